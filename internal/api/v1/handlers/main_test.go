package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"taskboard-go/configs"
	v1 "taskboard-go/internal/api/v1"
	"taskboard-go/internal/config"
	"taskboard-go/internal/middleware"
	"taskboard-go/internal/repository"
	"taskboard-go/pkg/database"
	"taskboard-go/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func connectDBTest(cfg configs.Config) *sql.DB {
	psqlconn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBNameTest)
	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	return db
}

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	// Set GO_ENV ke "test" supaya LoadConfig tidak mencetak log .env
	os.Setenv("GO_ENV", "test")

	// Coba muat .env (jika ada)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../../../.env"); err != nil {
			logger.SystemLogger.Info("No .env file found, using default values")
		}
	}

	cfg := configs.LoadConfig()
	config.Apply(cfg)

	config.DB = connectDBTest(cfg)
	defer config.DB.Close()

	repository.CreateTableIfNotExists(config.DB)

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	os.Exit(m.Run())
}

// createTestApp menginisialisasi aplikasi Fiber dengan route yang akan di-test
func createTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	v1.RegisterRoutes(app)
	return app
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func jsonRequest(method, url string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	return resp.StatusCode, result
}

func dataField(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data field in response, got %v", result)
	}
	return data
}

// registerUser mendaftarkan user baru dan mengembalikan email, id, serta token pair.
func registerUser(t *testing.T, app *fiber.App, prefix string) (string, int, string, string) {
	t.Helper()
	email := uniqueEmail(prefix)
	status, result := doJSON(t, app, jsonRequest("POST", "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	}, ""))
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201 on register but got %d: %v", status, result)
	}
	data := dataField(t, result)
	id, ok := data["id"].(float64)
	if !ok {
		t.Fatalf("Expected numeric id in register response")
	}
	access, _ := data["access"].(string)
	refresh, _ := data["refresh"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("Expected token pair in register response")
	}
	return email, int(id), access, refresh
}
