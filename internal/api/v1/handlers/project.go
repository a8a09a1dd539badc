package handlers

import (
	"taskboard-go/internal/auth"
	"taskboard-go/internal/config"
	"taskboard-go/internal/middleware"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Project handlers

func ListProjects(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	projects, err := repository.ListProjects(config.DB, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching projects", zap.Error(err))
		return serverError(c, "Error fetching projects")
	}

	return c.JSON(fiber.Map{
		"message": "Projects fetched successfully",
		"success": true,
		"status":  200,
		"data":    projects,
	})
}

func CreateProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type ProjectRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create project", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	project, err := repository.CreateProject(config.DB, user.ID, req.Title, req.Description)
	if err != nil {
		logger.ErrorLogger.Error("Error creating project", zap.Error(err))
		return serverError(c, "Error creating project")
	}

	config.Hub.Publish("created", "project", project.ID)
	logger.AuditLogger.Info("Project created", zap.Int("project_id", project.ID), zap.Int("user_id", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Project created successfully!",
		"success": true,
		"status":  201,
		"data":    project,
	})
}

func GetProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	project, err := repository.FindProject(config.DB, projectID, user.ID)
	if err != nil {
		return notFound(c, "Project not found")
	}

	return c.JSON(fiber.Map{
		"message": "Project found",
		"success": true,
		"status":  200,
		"data":    project,
	})
}

func UpdateProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	project, err := repository.FindProject(config.DB, projectID, user.ID)
	if err != nil {
		return notFound(c, "Project not found")
	}
	if !auth.CanAccess(user.ID, project, auth.ActionWrite) {
		return notFound(c, "Project not found")
	}

	type UpdateProjectRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update project", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	if err := repository.UpdateProject(config.DB, project.ID, req.Title, req.Description); err != nil {
		logger.ErrorLogger.Error("Error updating project", zap.Error(err))
		return serverError(c, "Error updating project")
	}

	updated, err := repository.FindProject(config.DB, project.ID, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching updated project", zap.Error(err))
		return serverError(c, "Error fetching updated project")
	}

	config.Hub.Publish("updated", "project", project.ID)
	logger.AuditLogger.Info("Project updated", zap.Int("project_id", project.ID))
	return c.JSON(fiber.Map{
		"message": "Project updated successfully",
		"success": true,
		"status":  200,
		"data":    updated,
	})
}

func DeleteProject(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	project, err := repository.FindProject(config.DB, projectID, user.ID)
	if err != nil {
		return notFound(c, "Project not found")
	}
	if !auth.CanAccess(user.ID, project, auth.ActionDelete) {
		return notFound(c, "Project not found")
	}

	// Penghapusan berantai eksplisit: task -> project
	if err := repository.DeleteProjectCascade(config.DB, project.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting project", zap.Error(err))
		return serverError(c, "Error deleting project")
	}

	config.Hub.Publish("deleted", "project", project.ID)
	logger.AuditLogger.Info("Project deleted", zap.Int("project_id", project.ID))
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
		"success": true,
		"status":  200,
	})
}
