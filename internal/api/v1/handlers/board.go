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

// List & card handlers. Akses ke grandchild memvalidasi rantai parent penuh
// (card -> list -> board -> workspace -> owner) lewat JOIN di repository;
// memeriksa workspace root saja tidak cukup.

func validCardStatus(status string) bool {
	switch status {
	case "doing", "done":
		return true
	default:
		return false
	}
}

func validVisibility(visibility string) bool {
	switch visibility {
	case "private", "public":
		return true
	default:
		return false
	}
}

func ListLists(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	boardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid board ID")
	}

	board, err := repository.FindBoard(config.DB, boardID, user.ID)
	if err != nil {
		return notFound(c, "Board not found")
	}

	lists, err := repository.ListLists(config.DB, board.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching lists", zap.Error(err))
		return serverError(c, "Error fetching lists")
	}

	return c.JSON(fiber.Map{
		"message": "Lists fetched successfully",
		"success": true,
		"status":  200,
		"data":    lists,
	})
}

func CreateList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	boardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid board ID")
	}

	board, err := repository.FindBoard(config.DB, boardID, user.ID)
	if err != nil {
		return notFound(c, "Board not found")
	}

	type ListRequest struct {
		Name       string `json:"name" validate:"required"`
		Background string `json:"background"`
		Visibility string `json:"visibility" validate:"omitempty,oneof=private public"`
	}

	var req ListRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create list", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Visibility == "" {
		req.Visibility = "private"
	}

	list, err := repository.CreateList(config.DB, board.ID, req.Name, req.Background, req.Visibility)
	if err != nil {
		logger.ErrorLogger.Error("Error creating list", zap.Error(err))
		return serverError(c, "Error creating list")
	}

	config.Hub.Publish("created", "list", list.ID)
	logger.AuditLogger.Info("List created", zap.Int("list_id", list.ID), zap.Int("board_id", board.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "List created successfully",
		"success": true,
		"status":  201,
		"data":    list,
	})
}

func DeleteList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	listID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid list ID")
	}

	list, err := repository.FindList(config.DB, listID, user.ID)
	if err != nil {
		return notFound(c, "List not found")
	}
	if !auth.CanAccess(user.ID, list, auth.ActionDelete) {
		return notFound(c, "List not found")
	}

	if err := repository.DeleteListCascade(config.DB, list.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting list", zap.Error(err))
		return serverError(c, "Error deleting list")
	}

	config.Hub.Publish("deleted", "list", list.ID)
	logger.AuditLogger.Info("List deleted", zap.Int("list_id", list.ID))
	return c.JSON(fiber.Map{
		"message": "List deleted successfully",
		"success": true,
		"status":  200,
	})
}

func ListCards(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	listID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid list ID")
	}

	list, err := repository.FindList(config.DB, listID, user.ID)
	if err != nil {
		return notFound(c, "List not found")
	}

	cards, err := repository.ListCards(config.DB, list.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching cards", zap.Error(err))
		return serverError(c, "Error fetching cards")
	}

	return c.JSON(fiber.Map{
		"message": "Cards fetched successfully",
		"success": true,
		"status":  200,
		"data":    cards,
	})
}

func CreateCard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	listID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid list ID")
	}

	list, err := repository.FindList(config.DB, listID, user.ID)
	if err != nil {
		return notFound(c, "List not found")
	}

	type CardRequest struct {
		Name       string `json:"name" validate:"required"`
		Background string `json:"background"`
		Visibility string `json:"visibility" validate:"omitempty,oneof=private public"`
		Status     string `json:"status" validate:"omitempty,oneof=doing done"`
	}

	var req CardRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create card", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Visibility == "" {
		req.Visibility = "private"
	}
	if req.Status == "" {
		req.Status = "doing"
	}

	card, err := repository.CreateCard(config.DB, list.ID, req.Name, req.Background, req.Visibility, req.Status)
	if err != nil {
		logger.ErrorLogger.Error("Error creating card", zap.Error(err))
		return serverError(c, "Error creating card")
	}

	config.Hub.Publish("created", "card", card.ID)
	logger.AuditLogger.Info("Card created", zap.Int("card_id", card.ID), zap.Int("list_id", list.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Card created successfully",
		"success": true,
		"status":  201,
		"data":    card,
	})
}

func GetCard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	cardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid card ID")
	}

	card, err := repository.FindCard(config.DB, cardID, user.ID)
	if err != nil {
		return notFound(c, "Card not found")
	}

	return c.JSON(fiber.Map{
		"message": "Card found",
		"success": true,
		"status":  200,
		"data":    card,
	})
}

func UpdateCard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	cardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid card ID")
	}

	card, err := repository.FindCard(config.DB, cardID, user.ID)
	if err != nil {
		return notFound(c, "Card not found")
	}
	if !auth.CanAccess(user.ID, card, auth.ActionWrite) {
		return notFound(c, "Card not found")
	}

	// pointer (*) untuk menandakan bahwa field bisa kosong
	type UpdateCardRequest struct {
		Name       *string `json:"name"`
		Background *string `json:"background"`
		Visibility *string `json:"visibility"`
		Status     *string `json:"status"`
	}

	var req UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update card", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	// status card bebas berpindah antar nilai valid, tanpa workflow
	if req.Status != nil && !validCardStatus(*req.Status) {
		return badRequest(c, "Invalid status")
	}
	if req.Visibility != nil && !validVisibility(*req.Visibility) {
		return badRequest(c, "Invalid visibility")
	}

	if err := repository.UpdateCard(config.DB, card.ID, req.Name, req.Background, req.Visibility, req.Status); err != nil {
		logger.ErrorLogger.Error("Error updating card", zap.Error(err))
		return serverError(c, "Error updating card")
	}

	updated, err := repository.FindCard(config.DB, card.ID, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching updated card", zap.Error(err))
		return serverError(c, "Error fetching updated card")
	}

	config.Hub.Publish("updated", "card", card.ID)
	logger.AuditLogger.Info("Card updated", zap.Int("card_id", card.ID))
	return c.JSON(fiber.Map{
		"message": "Card updated successfully",
		"success": true,
		"status":  200,
		"data":    updated,
	})
}

func DeleteCard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	cardID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid card ID")
	}

	card, err := repository.FindCard(config.DB, cardID, user.ID)
	if err != nil {
		return notFound(c, "Card not found")
	}
	if !auth.CanAccess(user.ID, card, auth.ActionDelete) {
		return notFound(c, "Card not found")
	}

	if err := repository.DeleteCard(config.DB, card.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting card", zap.Error(err))
		return serverError(c, "Error deleting card")
	}

	config.Hub.Publish("deleted", "card", card.ID)
	logger.AuditLogger.Info("Card deleted", zap.Int("card_id", card.ID))
	return c.JSON(fiber.Map{
		"message": "Card deleted successfully",
		"success": true,
		"status":  200,
	})
}
