package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"taskboard-go/configs"
	"taskboard-go/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	os.Setenv("GO_ENV", "test")

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			logger.SystemLogger.Info("No .env file found, using default values")
		}
	}

	cfg := configs.LoadConfig()
	psqlconn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBNameTest)
	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	testDB = db
	defer testDB.Close()

	CreateTableIfNotExists(testDB)

	os.Exit(m.Run())
}

func testEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func TestCreateUserHashesPassword(t *testing.T) {
	email := testEmail("hash")
	user, err := CreateUser(testDB, email, "rahasia123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("Expected user id to be set")
	}
	if user.Username != email || user.Role != "user" {
		t.Errorf("Unexpected user fields: %+v", user)
	}

	var stored string
	if err := testDB.QueryRow("SELECT password FROM users WHERE id = $1", user.ID).Scan(&stored); err != nil {
		t.Fatalf("Error reading stored password: %v", err)
	}
	if stored == "rahasia123" {
		t.Errorf("Password stored in plain text")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	email := testEmail("dupe")
	if _, err := CreateUser(testDB, email, "rahasia123"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := CreateUser(testDB, email, "lainlagi456"); err != ErrDuplicateEmail {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	user, err := CreateUser(testDB, testEmail("verify"), "rahasia123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if !VerifyPassword(testDB, user.ID, "rahasia123") {
		t.Errorf("Expected correct password to verify")
	}
	if VerifyPassword(testDB, user.ID, "salah") {
		t.Errorf("Expected wrong password to fail")
	}
	if VerifyPassword(testDB, 999999999, "rahasia123") {
		t.Errorf("Expected unknown user to fail verification")
	}
}

func TestSetPasswordRotatesHash(t *testing.T) {
	user, err := CreateUser(testDB, testEmail("rotate"), "lama123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := SetPassword(testDB, user.ID, "baru456"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if VerifyPassword(testDB, user.ID, "lama123") {
		t.Errorf("Expected old password to stop working")
	}
	if !VerifyPassword(testDB, user.ID, "baru456") {
		t.Errorf("Expected new password to verify")
	}
}

// Menghapus user menyapu seluruh hirarki miliknya dan melepas assignment
// di task milik user lain.
func TestDeleteUserCascade(t *testing.T) {
	owner, err := CreateUser(testDB, testEmail("cascadeowner"), "rahasia123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	other, err := CreateUser(testDB, testEmail("cascadeother"), "rahasia123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	ws, err := CreateWorkspace(testDB, owner.ID, "Cascade WS")
	if err != nil {
		t.Fatalf("CreateWorkspace failed: %v", err)
	}
	board, err := CreateBoard(testDB, ws.ID, owner.ID, "Cascade Board", "", "private")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	list, err := CreateList(testDB, board.ID, "Cascade List", "", "private")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if _, err := CreateCard(testDB, list.ID, "Cascade Card", "", "private", "doing"); err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	project, err := CreateProject(testDB, owner.ID, "Cascade Project", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if _, err := CreateTask(testDB, project.ID, nil, "Cascade Task", "", "OPEN", nil); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// Task milik user lain yang di-assign ke user yang akan dihapus
	otherProject, err := CreateProject(testDB, other.ID, "Other Project", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	assigned, err := CreateTask(testDB, otherProject.ID, &owner.ID, "Assigned Task", "", "OPEN", nil)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := DeleteUserCascade(testDB, owner.ID); err != nil {
		t.Fatalf("DeleteUserCascade failed: %v", err)
	}

	if _, err := FindUserByID(testDB, owner.ID); err != sql.ErrNoRows {
		t.Errorf("Expected user to be gone, got %v", err)
	}

	counts := map[string]string{
		"workspaces": "SELECT COUNT(*) FROM workspaces WHERE owner_id = $1",
		"projects":   "SELECT COUNT(*) FROM projects WHERE owner_id = $1",
		"boards": `SELECT COUNT(*) FROM boards b
			JOIN workspaces w ON b.workspace_id = w.id WHERE w.owner_id = $1`,
		"tasks": `SELECT COUNT(*) FROM tasks t
			JOIN projects p ON t.project_id = p.id WHERE p.owner_id = $1`,
	}
	for name, query := range counts {
		var count int
		if err := testDB.QueryRow(query, owner.ID).Scan(&count); err != nil {
			t.Fatalf("Error counting %s: %v", name, err)
		}
		if count != 0 {
			t.Errorf("Expected no %s left after cascade, got %d", name, count)
		}
	}

	// Task user lain tetap ada, tapi assignment-nya dilepas
	var assignedTo sql.NullInt64
	if err := testDB.QueryRow("SELECT assigned_to FROM tasks WHERE id = $1", assigned.ID).Scan(&assignedTo); err != nil {
		t.Fatalf("Error reading assigned task: %v", err)
	}
	if assignedTo.Valid {
		t.Errorf("Expected assignment to be cleared, got %v", assignedTo.Int64)
	}
}
