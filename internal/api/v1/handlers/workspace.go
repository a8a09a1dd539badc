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

// Workspace & board handlers. Setiap operasi nested me-resolve parent-nya
// dengan cek kepemilikan yang menyatu di query; parent milik user lain
// menghasilkan 404, sama seperti parent yang tidak ada.

func ListWorkspaces(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	workspaces, err := repository.ListWorkspaces(config.DB, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching workspaces", zap.Error(err))
		return serverError(c, "Error fetching workspaces")
	}

	return c.JSON(fiber.Map{
		"message": "Workspaces fetched successfully",
		"success": true,
		"status":  200,
		"data":    workspaces,
	})
}

func CreateWorkspace(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type WorkspaceRequest struct {
		Name string `json:"name" validate:"required"`
	}

	var req WorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create workspace", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	ws, err := repository.CreateWorkspace(config.DB, user.ID, req.Name)
	if err != nil {
		logger.ErrorLogger.Error("Error creating workspace", zap.Error(err))
		return serverError(c, "Error creating workspace")
	}

	config.Hub.Publish("created", "workspace", ws.ID)
	logger.AuditLogger.Info("Workspace created", zap.Int("workspace_id", ws.ID), zap.Int("user_id", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Workspace created successfully",
		"success": true,
		"status":  201,
		"data":    ws,
	})
}

func DeleteWorkspace(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	workspaceID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid workspace ID")
	}

	ws, err := repository.FindWorkspace(config.DB, workspaceID, user.ID)
	if err != nil {
		return notFound(c, "Workspace not found")
	}
	if !auth.CanAccess(user.ID, ws, auth.ActionDelete) {
		return notFound(c, "Workspace not found")
	}

	// Penghapusan berantai eksplisit: card -> list -> board -> workspace
	if err := repository.DeleteWorkspaceCascade(config.DB, ws.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting workspace", zap.Error(err))
		return serverError(c, "Error deleting workspace")
	}

	config.Hub.Publish("deleted", "workspace", ws.ID)
	logger.AuditLogger.Info("Workspace deleted", zap.Int("workspace_id", ws.ID))
	return c.JSON(fiber.Map{
		"message": "Workspace deleted successfully",
		"success": true,
		"status":  200,
	})
}

func ListBoards(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	workspaceID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid workspace ID")
	}

	ws, err := repository.FindWorkspace(config.DB, workspaceID, user.ID)
	if err != nil {
		return notFound(c, "Workspace not found")
	}

	boards, err := repository.ListBoards(config.DB, ws.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching boards", zap.Error(err))
		return serverError(c, "Error fetching boards")
	}

	return c.JSON(fiber.Map{
		"message": "Boards fetched successfully",
		"success": true,
		"status":  200,
		"data":    boards,
	})
}

func CreateBoard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	workspaceID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid workspace ID")
	}

	ws, err := repository.FindWorkspace(config.DB, workspaceID, user.ID)
	if err != nil {
		return notFound(c, "Workspace not found")
	}

	// workspace_id dari body sengaja tidak dibaca; linkage selalu mengikuti
	// parent yang di-resolve dari path.
	type BoardRequest struct {
		Name       string `json:"name" validate:"required"`
		Background string `json:"background"`
		Visibility string `json:"visibility" validate:"omitempty,oneof=private public"`
	}

	var req BoardRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create board", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Visibility == "" {
		req.Visibility = "private"
	}

	board, err := repository.CreateBoard(config.DB, ws.ID, user.ID, req.Name, req.Background, req.Visibility)
	if err != nil {
		logger.ErrorLogger.Error("Error creating board", zap.Error(err))
		return serverError(c, "Error creating board")
	}

	config.Hub.Publish("created", "board", board.ID)
	logger.AuditLogger.Info("Board created", zap.Int("board_id", board.ID), zap.Int("workspace_id", ws.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Board created successfully",
		"success": true,
		"status":  201,
		"data":    board,
	})
}

func DeleteBoard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	boardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid board ID")
	}

	board, err := repository.FindBoard(config.DB, boardID, user.ID)
	if err != nil {
		return notFound(c, "Board not found")
	}
	if !auth.CanAccess(user.ID, board, auth.ActionDelete) {
		return notFound(c, "Board not found")
	}

	if err := repository.DeleteBoardCascade(config.DB, board.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting board", zap.Error(err))
		return serverError(c, "Error deleting board")
	}

	config.Hub.Publish("deleted", "board", board.ID)
	logger.AuditLogger.Info("Board deleted", zap.Int("board_id", board.ID))
	return c.JSON(fiber.Map{
		"message": "Board deleted successfully",
		"success": true,
		"status":  200,
	})
}
