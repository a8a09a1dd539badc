package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"taskboard-go/internal/config"
	"taskboard-go/internal/middleware"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Avatar handling

// validateAvatar memastikan file adalah gambar dan tidak lebih dari 5MB.
func validateAvatar(file *multipart.FileHeader) error {
	if file.Size > 5<<20 {
		return fiber.NewError(fiber.StatusBadRequest, "File size exceeds the limit of 5MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be an image")
	}

	return nil
}

// GetUpload menyajikan file avatar yang sudah diunggah.
func GetUpload(c *fiber.Ctx) error {
	filename := c.Params("filename")
	filePath := path.Join("uploads", filename)
	return c.SendFile(filePath)
}

// UploadAvatar mengunggah foto profil user yang sedang login.
func UploadAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	uploadDir := "uploads"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		if err := os.Mkdir(uploadDir, os.ModePerm); err != nil {
			logger.ErrorLogger.Error("Error creating upload directory", zap.Error(err))
			return serverError(c, "Error creating upload directory")
		}
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		logger.ErrorLogger.Error("Error uploading file", zap.Error(err))
		return badRequest(c, "Error uploading file")
	}

	if err := validateAvatar(file); err != nil {
		logger.ErrorLogger.Error("Error validating file", zap.Error(err))
		return badRequest(c, err.Error())
	}

	// Nama file unik berdasarkan timestamp
	newFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	filePath := path.Join(uploadDir, newFilename)
	if err := c.SaveFile(file, filePath); err != nil {
		logger.ErrorLogger.Error("Error saving file", zap.Error(err))
		return serverError(c, "Error saving file")
	}

	fileURL := fmt.Sprintf("/uploads/%s", newFilename)
	if err := repository.SetProfilePicture(config.DB, user.ID, fileURL); err != nil {
		logger.ErrorLogger.Error("Error updating profile picture", zap.Error(err))
		return serverError(c, "Error updating profile picture")
	}

	// Profil di cache sudah basi, hapus
	config.RedisClient.Del(config.Ctx, fmt.Sprintf("profile:%d", user.ID))

	logger.AuditLogger.Info("Avatar uploaded", zap.String("filename", newFilename), zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Avatar uploaded successfully",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"avatar": fileURL,
		},
	})
}
