package repository

import (
	"database/sql"

	"taskboard-go/internal/models"
)

// FindProject mengambil project milik owner.
func FindProject(db *sql.DB, projectID, ownerID int) (models.Project, error) {
	var p models.Project
	err := db.QueryRow(
		"SELECT id, owner_id, title, description, created_at FROM projects WHERE id = $1 AND owner_id = $2",
		projectID, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt)
	return p, err
}

// ListProjects mengambil semua project milik owner.
func ListProjects(db *sql.DB, ownerID int) ([]models.Project, error) {
	rows, err := db.Query(
		"SELECT id, owner_id, title, description, created_at FROM projects WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProject membuat project baru untuk owner.
func CreateProject(db *sql.DB, ownerID int, title, description string) (models.Project, error) {
	p := models.Project{OwnerID: ownerID, Title: title, Description: description}
	err := db.QueryRow(
		"INSERT INTO projects (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id, created_at",
		ownerID, title, description,
	).Scan(&p.ID, &p.CreatedAt)
	return p, err
}

// UpdateProject melakukan partial update pada project yang sudah divalidasi.
func UpdateProject(db *sql.DB, projectID int, title, description *string) error {
	_, err := db.Exec(`
		UPDATE projects
		SET title = COALESCE($1, title),
			description = COALESCE($2, description)
		WHERE id = $3`,
		title, description, projectID,
	)
	return err
}

// DeleteProjectCascade menghapus project beserta seluruh task di dalamnya.
func DeleteProjectCascade(db *sql.DB, projectID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE project_id = $1", projectID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM projects WHERE id = $1", projectID); err != nil {
		return err
	}
	return tx.Commit()
}

// TaskFilter membatasi hasil ListTasks. Nil berarti filter tidak dipakai.
type TaskFilter struct {
	Status    *string
	ProjectID *int
}

// ListTasks mengambil task yang project-nya dimiliki owner. assigned_to tidak
// pernah memberi akses; otorisasi selalu lewat projects.owner_id.
func ListTasks(db *sql.DB, ownerID int, filter TaskFilter) ([]models.Task, error) {
	query := `
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description, t.status, t.deadline, t.created_at, p.owner_id
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		WHERE p.owner_id = $1`
	args := []interface{}{ownerID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " AND t.status = $2"
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		if filter.Status != nil {
			query += " AND t.project_id = $3"
		} else {
			query += " AND t.project_id = $2"
		}
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.AssignedTo, &t.Title, &t.Description, &t.Status, &t.Deadline, &t.CreatedAt, &t.OwnerID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// FindTask memvalidasi rantai task -> project -> owner.
func FindTask(db *sql.DB, taskID, ownerID int) (models.Task, error) {
	var t models.Task
	err := db.QueryRow(`
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description, t.status, t.deadline, t.created_at, p.owner_id
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		WHERE t.id = $1 AND p.owner_id = $2`,
		taskID, ownerID,
	).Scan(&t.ID, &t.ProjectID, &t.AssignedTo, &t.Title, &t.Description, &t.Status, &t.Deadline, &t.CreatedAt, &t.OwnerID)
	return t, err
}

// CreateTask membuat task di bawah project yang sudah divalidasi.
func CreateTask(db *sql.DB, projectID int, assignedTo *int, title, description, status string, deadline *string) (models.Task, error) {
	t := models.Task{ProjectID: projectID, Title: title, Description: description, Status: status}
	err := db.QueryRow(
		"INSERT INTO tasks (project_id, assigned_to, title, description, status, deadline) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, assigned_to, deadline, created_at",
		projectID, assignedTo, title, description, status, deadline,
	).Scan(&t.ID, &t.AssignedTo, &t.Deadline, &t.CreatedAt)
	return t, err
}

// UpdateTask melakukan partial update pada task yang sudah divalidasi.
func UpdateTask(db *sql.DB, taskID int, title, description, status, deadline *string, assignedTo *int) error {
	_, err := db.Exec(`
		UPDATE tasks
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			deadline = COALESCE($4::date, deadline),
			assigned_to = COALESCE($5, assigned_to)
		WHERE id = $6`,
		title, description, status, deadline, assignedTo, taskID,
	)
	return err
}

// DeleteTask menghapus task yang sudah divalidasi.
func DeleteTask(db *sql.DB, taskID int) error {
	_, err := db.Exec("DELETE FROM tasks WHERE id = $1", taskID)
	return err
}
