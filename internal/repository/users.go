package repository

import (
	"database/sql"
	"errors"

	"taskboard-go/internal/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail dikembalikan ketika email sudah terdaftar.
var ErrDuplicateEmail = errors.New("email already registered")

// FindUserByEmail mengambil user berdasarkan email.
// Mengembalikan sql.ErrNoRows jika tidak ada.
func FindUserByEmail(db *sql.DB, email string) (models.User, error) {
	var user models.User
	err := db.QueryRow(
		"SELECT id, username, email, role, profile_picture, created_at, updated_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// FindUserByID mengambil user berdasarkan id.
func FindUserByID(db *sql.DB, id int) (models.User, error) {
	var user models.User
	err := db.QueryRow(
		"SELECT id, username, email, role, profile_picture, created_at, updated_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

// CreateUser menyimpan user baru dengan password yang sudah di-hash.
// Username diisi sama dengan email (alias legacy pasca migrasi).
func CreateUser(db *sql.DB, email, rawPassword string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	user.Username = email
	user.Email = email
	user.Role = "user"
	err = db.QueryRow(
		"INSERT INTO users (username, email, password, role) VALUES ($1, $2, $3, 'user') RETURNING id, created_at, updated_at",
		email, email, string(hashedPassword),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// SetPassword meng-hash ulang dan menyimpan password baru.
func SetPassword(db *sql.DB, userID int, rawPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		string(hashedPassword), userID,
	)
	return err
}

// VerifyPassword membandingkan password mentah dengan hash di database.
func VerifyPassword(db *sql.DB, userID int, rawPassword string) bool {
	var stored string
	if err := db.QueryRow("SELECT password FROM users WHERE id = $1", userID).Scan(&stored); err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(rawPassword)) == nil
}

// SetProfilePicture menyimpan URL avatar user.
func SetProfilePicture(db *sql.DB, userID int, url string) error {
	_, err := db.Exec("UPDATE users SET profile_picture = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", url, userID)
	return err
}

// DeleteUserCascade menghapus user beserta seluruh workspace dan project miliknya.
func DeleteUserCascade(db *sql.DB, userID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM cards WHERE list_id IN (
			SELECT l.id FROM lists l
			JOIN boards b ON l.board_id = b.id
			JOIN workspaces w ON b.workspace_id = w.id
			WHERE w.owner_id = $1)`,
		`DELETE FROM lists WHERE board_id IN (
			SELECT b.id FROM boards b
			JOIN workspaces w ON b.workspace_id = w.id
			WHERE w.owner_id = $1)`,
		`DELETE FROM boards WHERE workspace_id IN (SELECT id FROM workspaces WHERE owner_id = $1)`,
		`DELETE FROM workspaces WHERE owner_id = $1`,
		`DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE owner_id = $1)`,
		`UPDATE tasks SET assigned_to = NULL WHERE assigned_to = $1`,
		`DELETE FROM projects WHERE owner_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
