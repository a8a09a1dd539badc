package middleware

import (
	"strings"

	"taskboard-go/internal/auth"
	"taskboard-go/internal/config"
	"taskboard-go/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// RequestUser adalah context object per-request yang dibawa lewat c.Locals,
// menggantikan state user ambient ala framework.
type RequestUser struct {
	ID       int
	Username string
	Email    string
	Role     string
}

const localsUserKey = "requestUser"

// UseToken memvalidasi Bearer access token dan menaruh RequestUser di Locals.
func UseToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
	}

	claims, err := auth.ValidateAccess(parts[1])
	if err != nil {
		switch err {
		case auth.ErrTokenExpired:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token expired"})
		case auth.ErrTokenKind:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token kind"})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}
	}

	// Baca ulang user supaya user yang sudah dihapus langsung tertolak.
	user, err := repository.FindUserByID(config.DB, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	c.Locals(localsUserKey, RequestUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	return c.Next()
}

// CurrentUser mengambil RequestUser dari Locals. Hanya valid setelah UseToken.
func CurrentUser(c *fiber.Ctx) RequestUser {
	return c.Locals(localsUserKey).(RequestUser)
}
