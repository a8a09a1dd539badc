package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"taskboard-go/internal/auth"
	"taskboard-go/internal/config"
	"taskboard-go/internal/middleware"
	"taskboard-go/internal/models"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Task handlers

// validTaskStatus mengecek nilai status task.
// Transisi antar status bebas; tidak ada workflow yang dipaksakan.
func validTaskStatus(status string) bool {
	switch status {
	case "OPEN", "DOING", "DONE":
		return true
	default:
		return false
	}
}

// validDeadline menerima tanggal berformat YYYY-MM-DD, sesuai kolom date.
func validDeadline(deadline string) bool {
	_, err := time.Parse("2006-01-02", deadline)
	return err == nil
}

func taskCacheKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

// cachedTask membungkus task untuk disimpan di Redis. Owner hasil resolve
// ikut disimpan secara eksplisit karena OwnerID tidak pernah di-serialize
// ke response publik.
type cachedTask struct {
	models.Task
	Owner int `json:"owner"`
}

func ListTasks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	// Query filter: status dan project, keduanya opsional dan bisa digabung
	var filter repository.TaskFilter
	if status := c.Query("status"); status != "" {
		if !validTaskStatus(status) {
			return badRequest(c, "Invalid status filter")
		}
		filter.Status = &status
	}
	if project := c.Query("project"); project != "" {
		projectID, err := strconv.Atoi(project)
		if err != nil {
			return badRequest(c, "Invalid project filter")
		}
		filter.ProjectID = &projectID
	}

	tasks, err := repository.ListTasks(config.DB, user.ID, filter)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return serverError(c, "Error fetching tasks")
	}

	return c.JSON(fiber.Map{
		"message": "Tasks fetched successfully",
		"success": true,
		"status":  200,
		"data":    tasks,
	})
}

func CreateTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type TaskRequest struct {
		Project     int     `json:"project" validate:"required"`
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description"`
		Status      string  `json:"status" validate:"omitempty,oneof=OPEN DOING DONE"`
		Deadline    *string `json:"deadline"`
		AssignedTo  *int    `json:"assigned_to"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return validationError(c, err)
	}
	if req.Status == "" {
		req.Status = "OPEN"
	}
	if req.Deadline != nil && !validDeadline(*req.Deadline) {
		return badRequest(c, "Invalid deadline")
	}

	// Parent project di-resolve dengan cek kepemilikan; project milik user
	// lain tidak bisa dibedakan dari project yang tidak ada.
	project, err := repository.FindProject(config.DB, req.Project, user.ID)
	if err != nil {
		return notFound(c, "Project not found")
	}

	task, err := repository.CreateTask(config.DB, project.ID, req.AssignedTo, req.Title, req.Description, req.Status, req.Deadline)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return serverError(c, "Error creating task")
	}

	config.Hub.Publish("created", "task", task.ID)
	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", task.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Task created successfully",
		"success": true,
		"status":  201,
		"data":    task,
	})
}

func GetTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	// Coba ambil data task dari cache Redis
	if cached, err := config.RedisClient.Get(config.Ctx, taskCacheKey(taskID)).Result(); err == nil {
		var ct cachedTask
		if err = json.Unmarshal([]byte(cached), &ct); err == nil {
			task := ct.Task
			task.OwnerID = ct.Owner
			// Cek kepemilikan tetap jalan untuk data dari cache
			if !auth.CanAccess(user.ID, task, auth.ActionRead) {
				return notFound(c, "Task not found")
			}
			return c.JSON(fiber.Map{
				"message": "Task found (from cache)",
				"success": true,
				"status":  200,
				"data":    task,
			})
		}
	}

	task, err := repository.FindTask(config.DB, taskID, user.ID)
	if err != nil {
		return notFound(c, "Task not found")
	}

	// Simpan data task ke cache selama 1 jam
	if taskJSON, err := json.Marshal(cachedTask{Task: task, Owner: task.OwnerID}); err == nil {
		config.RedisClient.SetEX(config.Ctx, taskCacheKey(taskID), taskJSON, time.Hour)
	}

	return c.JSON(fiber.Map{
		"message": "Task found",
		"success": true,
		"status":  200,
		"data":    task,
	})
}

func UpdateTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := repository.FindTask(config.DB, taskID, user.ID)
	if err != nil {
		return notFound(c, "Task not found")
	}
	if !auth.CanAccess(user.ID, task, auth.ActionWrite) {
		return notFound(c, "Task not found")
	}

	// pointer (*) untuk menandakan bahwa field bisa kosong
	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Deadline    *string `json:"deadline"`
		AssignedTo  *int    `json:"assigned_to"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if req.Status != nil && !validTaskStatus(*req.Status) {
		return badRequest(c, "Invalid status")
	}
	if req.Deadline != nil && !validDeadline(*req.Deadline) {
		return badRequest(c, "Invalid deadline")
	}

	if err := repository.UpdateTask(config.DB, task.ID, req.Title, req.Description, req.Status, req.Deadline, req.AssignedTo); err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return serverError(c, "Error updating task")
	}

	updated, err := repository.FindTask(config.DB, task.ID, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching updated task", zap.Error(err))
		return serverError(c, "Error fetching updated task")
	}

	// Perbarui cache Redis untuk task ini
	config.RedisClient.Del(config.Ctx, taskCacheKey(task.ID))
	if taskJSON, err := json.Marshal(cachedTask{Task: updated, Owner: updated.OwnerID}); err == nil {
		config.RedisClient.SetEX(config.Ctx, taskCacheKey(task.ID), taskJSON, time.Hour)
	}

	config.Hub.Publish("updated", "task", task.ID)
	logger.AuditLogger.Info("Task updated", zap.Int("taskID", task.ID))
	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"success": true,
		"status":  200,
		"data":    updated,
	})
}

func DeleteTask(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := repository.FindTask(config.DB, taskID, user.ID)
	if err != nil {
		return notFound(c, "Task not found")
	}
	if !auth.CanAccess(user.ID, task, auth.ActionDelete) {
		return notFound(c, "Task not found")
	}

	if err := repository.DeleteTask(config.DB, task.ID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return serverError(c, "Error deleting task")
	}

	// Hapus cache Redis untuk task ini
	config.RedisClient.Del(config.Ctx, taskCacheKey(task.ID))

	config.Hub.Publish("deleted", "task", task.ID)
	logger.AuditLogger.Info("Task deleted", zap.Int("taskID", task.ID))
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
		"success": true,
		"status":  200,
	})
}
