package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskboard-go/internal/auth"
	"taskboard-go/internal/config"
	"taskboard-go/internal/oauth"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/crypto"
	"taskboard-go/pkg/logger"
	"taskboard-go/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Auth handlers

// ensureDefaultWorkspace membuat workspace pertama untuk user yang belum
// punya, supaya frontend selalu punya tempat menaruh board.
func ensureDefaultWorkspace(userID int) {
	exists, err := repository.OwnerHasWorkspace(config.DB, userID)
	if err != nil || exists {
		return
	}
	if _, err := repository.CreateWorkspace(config.DB, userID, "Hard Spirit"); err != nil {
		logger.ErrorLogger.Error("Error creating default workspace", zap.Error(err))
	}
}

func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	// Validasi dengan validator
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return validationError(c, err)
	}

	user, err := repository.CreateUser(config.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.SecurityLogger.Warn("Duplicate email", zap.String("email", req.Email))
			return badRequest(c, "Email already registered")
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return serverError(c, "Error creating user")
	}

	tokens, err := auth.IssueTokens(user)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return serverError(c, "Error generating token")
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("userID", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"success": true,
		"status":  201,
		"data": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"access":   tokens.Access,
			"refresh":  tokens.Refresh,
		},
	})
}

func Login(c *fiber.Ctx) error {
	// Identifier bisa email atau username legacy (isinya sama dengan email)
	type LoginRequest struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		return badRequest(c, "Missing credentials")
	}

	user, err := auth.Authenticate(config.DB, identifier, req.Password)
	if err != nil {
		// Pesan sama untuk akun tidak ada dan password salah
		logger.SecurityLogger.Warn("Login failed", zap.String("identifier", identifier))
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid credentials",
			"success": false,
			"status":  401,
		})
	}

	tokens, err := auth.IssueTokens(user)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return serverError(c, "Error generating token")
	}

	ensureDefaultWorkspace(user.ID)

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(fiber.Map{
		"message": "Login success",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"access":  tokens.Access,
			"refresh": tokens.Refresh,
			"email":   user.Email,
		},
	})
}

func GoogleLogin(c *fiber.Ctx) error {
	type GoogleRequest struct {
		Token string `json:"token" validate:"required"`
	}

	var req GoogleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in google login", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	claim, err := oauth.VerifyGoogleToken(config.App.GoogleVerifyURL, req.Token)
	if err != nil {
		logger.SecurityLogger.Warn("Google token rejected", zap.Error(err))
		return badRequest(c, "Invalid token")
	}

	user, err := auth.AuthenticateExternal(config.DB, claim.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error resolving google user", zap.Error(err))
		return serverError(c, "Error resolving user")
	}

	// Simpan avatar dari klaim Google jika user belum punya
	if claim.Picture != "" && !user.ProfilePicture.Valid {
		if err := repository.SetProfilePicture(config.DB, user.ID, claim.Picture); err != nil {
			logger.ErrorLogger.Error("Error saving avatar", zap.Error(err))
		}
	}

	tokens, err := auth.IssueTokens(user)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return serverError(c, "Error generating token")
	}

	ensureDefaultWorkspace(user.ID)

	logger.AuditLogger.Info("Google login success", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Login success",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"access":  tokens.Access,
			"refresh": tokens.Refresh,
			"email":   user.Email,
			"name":    claim.Name,
			"avatar":  claim.Picture,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		Refresh string `json:"refresh" validate:"required"`
	}

	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in refresh", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	access, err := auth.Refresh(config.DB, req.Refresh)
	if err != nil {
		logger.SecurityLogger.Warn("Refresh rejected", zap.Error(err))
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid refresh token",
			"success": false,
			"status":  401,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Token refreshed",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"access": access,
		},
	})
}

// resetToken membungkus email + waktu kedaluwarsa ke dalam token terenkripsi.
func resetToken(email string) (string, error) {
	expiry := time.Now().Add(time.Hour).Unix()
	return crypto.Encrypt(fmt.Sprintf("%s|%d", email, expiry), config.App.EncryptionKey)
}

func parseResetToken(token string) (string, error) {
	plain, err := crypto.Decrypt(token, config.App.EncryptionKey)
	if err != nil {
		return "", err
	}
	parts := strings.Split(plain, "|")
	if len(parts) != 2 {
		return "", errors.New("malformed reset token")
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", err
	}
	if time.Now().Unix() > expiry {
		return "", errors.New("reset token expired")
	}
	return parts[0], nil
}

func ForgotPassword(c *fiber.Ctx) error {
	type ForgotRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req ForgotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in forgot password", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := repository.FindUserByEmail(config.DB, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return badRequest(c, "User not found")
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return serverError(c, "Error fetching user")
	}

	token, err := resetToken(user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error generating reset token", zap.Error(err))
		return serverError(c, "Error generating reset token")
	}

	if err := mailer.SendPasswordReset(config.App, user.Email, token); err != nil {
		logger.ErrorLogger.Error("Error sending reset mail", zap.Error(err))
		return serverError(c, "Error sending reset mail")
	}

	logger.AuditLogger.Info("Recovery link sent", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Recovery link sent",
		"success": true,
		"status":  200,
	})
}

func ResetPassword(c *fiber.Ctx) error {
	type ResetRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in reset password", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	email, err := parseResetToken(req.Token)
	if err != nil {
		logger.SecurityLogger.Warn("Reset token rejected", zap.Error(err))
		return badRequest(c, "Invalid or expired reset token")
	}

	user, err := repository.FindUserByEmail(config.DB, email)
	if err != nil {
		logger.SecurityLogger.Warn("Reset token for unknown user", zap.String("email", email))
		return badRequest(c, "Invalid or expired reset token")
	}

	if err := repository.SetPassword(config.DB, user.ID, req.NewPassword); err != nil {
		logger.ErrorLogger.Error("Error updating password", zap.Error(err))
		return serverError(c, "Error updating password")
	}

	logger.AuditLogger.Info("Password reset", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
		"success": true,
		"status":  200,
	})
}
