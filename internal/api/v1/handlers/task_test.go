package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"taskboard-go/internal/config"

	"github.com/gofiber/fiber/v2"
)

// createProject membuat project lewat API dan mengembalikan id-nya.
func createProject(t *testing.T, app *fiber.App, access, title string) int {
	t.Helper()
	status, result := doJSON(t, app, jsonRequest("POST", "/api/v1/projects/", map[string]string{
		"title": title,
	}, access))
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201 on create project but got %d: %v", status, result)
	}
	id, ok := dataField(t, result)["id"].(float64)
	if !ok {
		t.Fatalf("Expected project id")
	}
	return int(id)
}

func createTask(t *testing.T, app *fiber.App, access string, projectID int, title, status string) int {
	t.Helper()
	body := map[string]interface{}{
		"project": projectID,
		"title":   title,
	}
	if status != "" {
		body["status"] = status
	}
	code, result := doJSON(t, app, jsonRequest("POST", "/api/v1/tasks/", body, access))
	if code != http.StatusCreated {
		t.Fatalf("Expected status 201 on create task but got %d: %v", code, result)
	}
	id, _ := dataField(t, result)["id"].(float64)
	return int(id)
}

func TestProjectCrud(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "projuser")
	projectID := createProject(t, app, access, "My Project")

	status, result := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/projects/%d", projectID), nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on get project but got %d: %v", status, result)
	}
	if dataField(t, result)["title"] != "My Project" {
		t.Errorf("Expected project title 'My Project', got %v", dataField(t, result)["title"])
	}

	status, result = doJSON(t, app, jsonRequest("PATCH", fmt.Sprintf("/api/v1/projects/%d", projectID), map[string]string{
		"title": "Renamed Project",
	}, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on update project but got %d: %v", status, result)
	}
	if dataField(t, result)["title"] != "Renamed Project" {
		t.Errorf("Expected renamed title, got %v", dataField(t, result)["title"])
	}

	status, result = doJSON(t, app, jsonRequest("GET", "/api/v1/projects/", nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on list projects but got %d", status)
	}
	projects, ok := result["data"].([]interface{})
	if !ok || len(projects) == 0 {
		t.Errorf("Expected at least one project, got %v", result["data"])
	}
}

func TestCreateProjectRequiresTitle(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "projvalidation")
	status, _ := doJSON(t, app, jsonRequest("POST", "/api/v1/projects/", map[string]string{
		"description": "no title here",
	}, access))
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400 on project without title, got %d", status)
	}
}

// Task hanya bisa dibuat di bawah project milik sendiri; project milik user
// lain tampak seperti tidak ada.
func TestCreateTaskUnderForeignProject(t *testing.T) {
	app := createTestApp()

	_, _, accessA, _ := registerUser(t, app, "taskownera")
	_, _, accessB, _ := registerUser(t, app, "taskownerb")

	projectID := createProject(t, app, accessA, "A's Project")
	createTask(t, app, accessA, projectID, "A's Task", "")

	status, _ := doJSON(t, app, jsonRequest("POST", "/api/v1/tasks/", map[string]interface{}{
		"project": projectID,
		"title":   "B's sneaky task",
	}, accessB))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 when creating task under foreign project, got %d", status)
	}
}

func TestTaskDefaultStatusOpen(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "taskdefault")
	projectID := createProject(t, app, access, "Defaults")
	taskID := createTask(t, app, access, projectID, "No status given", "")

	status, result := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on get task but got %d: %v", status, result)
	}
	if dataField(t, result)["status"] != "OPEN" {
		t.Errorf("Expected default task status OPEN, got %v", dataField(t, result)["status"])
	}
}

// Filter status dan project bisa dipakai sendiri-sendiri atau digabung.
func TestTaskListFilters(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "taskfilter")
	projectA := createProject(t, app, access, "Filter A")
	projectB := createProject(t, app, access, "Filter B")
	createTask(t, app, access, projectA, "open in A", "OPEN")
	createTask(t, app, access, projectA, "done in A", "DONE")
	createTask(t, app, access, projectB, "done in B", "DONE")

	countTasks := func(url string) int {
		t.Helper()
		status, result := doJSON(t, app, jsonRequest("GET", url, nil, access))
		if status != http.StatusOK {
			t.Fatalf("Expected status 200 on %s but got %d: %v", url, status, result)
		}
		tasks, _ := result["data"].([]interface{})
		return len(tasks)
	}

	if got := countTasks(fmt.Sprintf("/api/v1/tasks/?project=%d", projectA)); got != 2 {
		t.Errorf("Expected 2 tasks in project A, got %d", got)
	}
	if got := countTasks(fmt.Sprintf("/api/v1/tasks/?status=DONE&project=%d", projectA)); got != 1 {
		t.Errorf("Expected 1 DONE task in project A, got %d", got)
	}
	if got := countTasks(fmt.Sprintf("/api/v1/tasks/?status=OPEN&project=%d", projectB)); got != 0 {
		t.Errorf("Expected 0 OPEN tasks in project B, got %d", got)
	}

	status, _ := doJSON(t, app, jsonRequest("GET", "/api/v1/tasks/?status=FINISHED", nil, access))
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400 on invalid status filter, got %d", status)
	}
}

func TestCrossUserTaskAccessReturnsNotFound(t *testing.T) {
	app := createTestApp()

	_, _, accessA, _ := registerUser(t, app, "taskusera")
	_, _, accessB, _ := registerUser(t, app, "taskuserb")

	projectID := createProject(t, app, accessA, "Private Project")
	taskID := createTask(t, app, accessA, projectID, "Private Task", "")

	status, _ := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, accessB))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 on cross-user task GET, got %d", status)
	}
	status, _ = doJSON(t, app, jsonRequest("PATCH", fmt.Sprintf("/api/v1/tasks/%d", taskID), map[string]string{
		"title": "stolen",
	}, accessB))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 on cross-user task PATCH, got %d", status)
	}
	status, _ = doJSON(t, app, jsonRequest("DELETE", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, accessB))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 on cross-user task DELETE, got %d", status)
	}
}

// Di-assign ke sebuah task tidak memberi akses; hanya pemilik project yang bisa.
func TestAssignedToDoesNotGrantTaskAccess(t *testing.T) {
	app := createTestApp()

	_, assigneeID, accessAssignee, _ := registerUser(t, app, "assignee")
	_, _, accessOwner, _ := registerUser(t, app, "assignowner")

	projectID := createProject(t, app, accessOwner, "Assign Project")
	status, result := doJSON(t, app, jsonRequest("POST", "/api/v1/tasks/", map[string]interface{}{
		"project":     projectID,
		"title":       "Assigned out",
		"assigned_to": assigneeID,
	}, accessOwner))
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201 on create task but got %d: %v", status, result)
	}
	taskID := int(dataField(t, result)["id"].(float64))

	status, _ = doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, accessAssignee))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 for assignee on foreign task, got %d", status)
	}
}

// GET kedua dilayani dari cache Redis; pemilik tetap bisa membaca task-nya
// dan user lain tetap melihat 404.
func TestTaskCachedReadKeepsOwnership(t *testing.T) {
	app := createTestApp()

	_, _, accessA, _ := registerUser(t, app, "cacheowner")
	_, _, accessB, _ := registerUser(t, app, "cacheother")

	projectID := createProject(t, app, accessA, "Cache Project")
	taskID := createTask(t, app, accessA, projectID, "Cached Task", "")

	for i := 0; i < 2; i++ {
		status, result := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, accessA))
		if status != http.StatusOK {
			t.Fatalf("Expected status 200 on read %d but got %d: %v", i+1, status, result)
		}
		if dataField(t, result)["title"] != "Cached Task" {
			t.Errorf("Expected task title on read %d, got %v", i+1, dataField(t, result)["title"])
		}
	}

	status, _ := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, accessB))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 for other user on cached task, got %d", status)
	}
}

func TestTaskDeadlineValidation(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "deadline")
	projectID := createProject(t, app, access, "Deadline Project")

	status, _ := doJSON(t, app, jsonRequest("POST", "/api/v1/tasks/", map[string]interface{}{
		"project":  projectID,
		"title":    "Bad deadline",
		"deadline": "31-12-2026",
	}, access))
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400 on malformed deadline, got %d", status)
	}

	status, result := doJSON(t, app, jsonRequest("POST", "/api/v1/tasks/", map[string]interface{}{
		"project":  projectID,
		"title":    "Good deadline",
		"deadline": "2026-12-31",
	}, access))
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201 on valid deadline but got %d: %v", status, result)
	}
	taskID := int(dataField(t, result)["id"].(float64))

	status, _ = doJSON(t, app, jsonRequest("PATCH", fmt.Sprintf("/api/v1/tasks/%d", taskID), map[string]string{
		"deadline": "soon",
	}, access))
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400 on malformed deadline update, got %d", status)
	}
}

func TestTaskUpdateAndCache(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "taskupdate")
	projectID := createProject(t, app, access, "Update Project")
	taskID := createTask(t, app, access, projectID, "Before", "OPEN")

	// GET pertama mengisi cache
	status, _ := doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on get task but got %d", status)
	}

	status, result := doJSON(t, app, jsonRequest("PATCH", fmt.Sprintf("/api/v1/tasks/%d", taskID), map[string]string{
		"title":  "After",
		"status": "DOING",
	}, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on update task but got %d: %v", status, result)
	}

	// GET berikutnya harus mengembalikan data baru, bukan cache basi
	status, result = doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on get task but got %d", status)
	}
	data := dataField(t, result)
	if data["title"] != "After" || data["status"] != "DOING" {
		t.Errorf("Expected updated task after cache refresh, got %v", data)
	}

	status, _ = doJSON(t, app, jsonRequest("PATCH", fmt.Sprintf("/api/v1/tasks/%d", taskID), map[string]string{
		"status": "ARCHIVED",
	}, access))
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400 on invalid task status, got %d", status)
	}
}

// Menghapus project menghapus semua task di bawahnya.
func TestProjectCascadeDelete(t *testing.T) {
	app := createTestApp()

	_, _, access, _ := registerUser(t, app, "projectcascade")
	projectID := createProject(t, app, access, "Doomed Project")
	createTask(t, app, access, projectID, "Doomed 1", "")
	createTask(t, app, access, projectID, "Doomed 2", "DONE")

	status, _ := doJSON(t, app, jsonRequest("DELETE", fmt.Sprintf("/api/v1/projects/%d", projectID), nil, access))
	if status != http.StatusOK {
		t.Fatalf("Expected status 200 on project delete but got %d", status)
	}

	var count int
	if err := config.DB.QueryRow("SELECT COUNT(*) FROM tasks WHERE project_id = $1", projectID).Scan(&count); err != nil {
		t.Fatalf("Error counting tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no orphan tasks after cascade, got %d", count)
	}
	status, _ = doJSON(t, app, jsonRequest("GET", fmt.Sprintf("/api/v1/projects/%d", projectID), nil, access))
	if status != http.StatusNotFound {
		t.Errorf("Expected 404 on deleted project, got %d", status)
	}
}
