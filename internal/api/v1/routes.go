package v1

import (
	"taskboard-go/internal/api/v1/handlers"
	"taskboard-go/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Auth (publik)
	api.Post("/auth/register", handlers.Register)
	api.Post("/auth/login", handlers.Login)
	api.Post("/auth/google", handlers.GoogleLogin)
	api.Post("/auth/forgot-password", handlers.ForgotPassword)
	api.Post("/auth/reset-password", handlers.ResetPassword)
	api.Post("/token/refresh", handlers.RefreshToken)

	// Auth (butuh access token)
	authRoutes := api.Group("/auth", middleware.UseToken)
	authRoutes.Post("/logout", handlers.Logout)
	authRoutes.Get("/me", handlers.Me)
	authRoutes.Post("/change-password", handlers.ChangePassword)
	authRoutes.Post("/avatar", handlers.UploadAvatar)

	api.Get("/uploads/:filename", handlers.GetUpload)

	// Workspace -> Board -> List -> Card
	workspaceRoutes := api.Group("/workspaces", middleware.UseToken)
	workspaceRoutes.Get("/", handlers.ListWorkspaces)
	workspaceRoutes.Post("/", handlers.CreateWorkspace)
	workspaceRoutes.Delete("/:id", handlers.DeleteWorkspace)
	workspaceRoutes.Get("/:id/boards/", handlers.ListBoards)
	workspaceRoutes.Post("/:id/boards/", handlers.CreateBoard)

	boardRoutes := api.Group("/boards", middleware.UseToken)
	boardRoutes.Delete("/:id", handlers.DeleteBoard)
	boardRoutes.Get("/:id/lists/", handlers.ListLists)
	boardRoutes.Post("/:id/lists/", handlers.CreateList)

	listRoutes := api.Group("/lists", middleware.UseToken)
	listRoutes.Delete("/:id", handlers.DeleteList)
	listRoutes.Get("/:id/cards/", handlers.ListCards)
	listRoutes.Post("/:id/cards/", handlers.CreateCard)

	cardRoutes := api.Group("/cards", middleware.UseToken)
	cardRoutes.Get("/:id", handlers.GetCard)
	cardRoutes.Patch("/:id", handlers.UpdateCard)
	cardRoutes.Delete("/:id", handlers.DeleteCard)

	// Project -> Task
	projectRoutes := api.Group("/projects", middleware.UseToken)
	projectRoutes.Get("/", handlers.ListProjects)
	projectRoutes.Post("/", handlers.CreateProject)
	projectRoutes.Get("/:id", handlers.GetProject)
	projectRoutes.Patch("/:id", handlers.UpdateProject)
	projectRoutes.Delete("/:id", handlers.DeleteProject)

	taskRoutes := api.Group("/tasks", middleware.UseToken)
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/", handlers.CreateTask)
	taskRoutes.Get("/:id", handlers.GetTask)
	taskRoutes.Patch("/:id", handlers.UpdateTask)
	taskRoutes.Delete("/:id", handlers.DeleteTask)
}
