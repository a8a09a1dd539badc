package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"taskboard-go/internal/config"
	"taskboard-go/internal/middleware"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Account handlers (endpoint di bawah /auth yang butuh access token)

// Logout tidak menghapus apa pun di server: token stateless tetap berlaku
// sampai kedaluwarsa. Hanya dicatat untuk audit.
func Logout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	logger.AuditLogger.Info("Logout", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Logged out",
		"success": true,
		"status":  200,
	})
}

type profile struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// Me mengembalikan profil user yang sedang login.
func Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	// Coba ambil dari cache Redis dulu
	cacheKey := fmt.Sprintf("profile:%d", user.ID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var p profile
		if err = json.Unmarshal([]byte(cached), &p); err == nil {
			return c.JSON(fiber.Map{
				"message": "Profile found (from cache)",
				"success": true,
				"status":  200,
				"data":    p,
			})
		}
	}

	full, err := repository.FindUserByID(config.DB, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching profile", zap.Error(err))
		return serverError(c, "Error fetching profile")
	}

	role := "user"
	if full.Role == "admin" {
		role = "admin"
	}
	p := profile{
		Email:    full.Email,
		Username: full.Username,
		Role:     role,
	}
	if full.ProfilePicture.Valid {
		p.Avatar = full.ProfilePicture.String
	}

	// Simpan ke cache selama 1 jam
	if profileJSON, err := json.Marshal(p); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, profileJSON, time.Hour)
	}

	return c.JSON(fiber.Map{
		"message": "Profile found",
		"success": true,
		"status":  200,
		"data":    p,
	})
}

func ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type ChangePasswordRequest struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in change password", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if !repository.VerifyPassword(config.DB, user.ID, req.OldPassword) {
		logger.SecurityLogger.Warn("Wrong old password", zap.Int("user_id", user.ID))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  fiber.Map{"old_password": "Old password is incorrect"},
			"success": false,
			"status":  400,
		})
	}

	if err := repository.SetPassword(config.DB, user.ID, req.NewPassword); err != nil {
		logger.ErrorLogger.Error("Error updating password", zap.Error(err))
		return serverError(c, "Error updating password")
	}

	logger.AuditLogger.Info("Password changed", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
		"success": true,
		"status":  200,
	})
}
