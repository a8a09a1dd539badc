package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID             int            `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	ProfilePicture sql.NullString `json:"profile_picture"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Workspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	OwnerID int    `json:"owner_id"`
}

type Board struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Background  string    `json:"background"`
	Visibility  string    `json:"visibility"`
	WorkspaceID int       `json:"workspace_id"`
	CreatedBy   sql.NullInt64 `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	// OwnerID adalah pemilik workspace induk, diisi saat query (tidak disimpan di tabel boards)
	OwnerID int `json:"-"`
}

type List struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background"`
	Visibility string `json:"visibility"`
	BoardID    int    `json:"board_id"`

	OwnerID int `json:"-"`
}

type Card struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Background string `json:"background"`
	Visibility string `json:"visibility"`
	Status     string `json:"status"`
	ListID     int    `json:"list_id"`

	OwnerID int `json:"-"`
}

type Project struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Task struct {
	ID          int            `json:"id"`
	ProjectID   int            `json:"project"`
	AssignedTo  sql.NullInt64  `json:"assigned_to"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Deadline    sql.NullTime   `json:"deadline"`
	CreatedAt   time.Time      `json:"created_at"`

	OwnerID int `json:"-"`
}
