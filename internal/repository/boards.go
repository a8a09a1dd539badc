package repository

import (
	"database/sql"

	"taskboard-go/internal/models"
)

// Semua query di file ini menggabungkan cek kepemilikan ke dalam query
// (WHERE ... owner_id = subjek). Resource milik user lain dan resource yang
// tidak ada sama-sama menghasilkan sql.ErrNoRows, jadi caller tidak bisa
// membedakan keduanya.

// FindWorkspace mengambil workspace milik owner.
func FindWorkspace(db *sql.DB, workspaceID, ownerID int) (models.Workspace, error) {
	var ws models.Workspace
	err := db.QueryRow(
		"SELECT id, name, owner_id FROM workspaces WHERE id = $1 AND owner_id = $2",
		workspaceID, ownerID,
	).Scan(&ws.ID, &ws.Name, &ws.OwnerID)
	return ws, err
}

// ListWorkspaces mengambil semua workspace milik owner.
func ListWorkspaces(db *sql.DB, ownerID int) ([]models.Workspace, error) {
	rows, err := db.Query("SELECT id, name, owner_id FROM workspaces WHERE owner_id = $1 ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.OwnerID); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

// CreateWorkspace membuat workspace baru untuk owner.
func CreateWorkspace(db *sql.DB, ownerID int, name string) (models.Workspace, error) {
	ws := models.Workspace{Name: name, OwnerID: ownerID}
	err := db.QueryRow(
		"INSERT INTO workspaces (name, owner_id) VALUES ($1, $2) RETURNING id",
		name, ownerID,
	).Scan(&ws.ID)
	return ws, err
}

// OwnerHasWorkspace mengecek apakah owner sudah punya workspace.
func OwnerHasWorkspace(db *sql.DB, ownerID int) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM workspaces WHERE owner_id = $1)", ownerID).Scan(&exists)
	return exists, err
}

// ListBoards mengambil board di bawah workspace milik owner.
// Workspace wajib sudah divalidasi lewat FindWorkspace oleh caller.
func ListBoards(db *sql.DB, workspaceID int) ([]models.Board, error) {
	rows, err := db.Query(
		"SELECT id, name, background, visibility, workspace_id, created_by, created_at FROM boards WHERE workspace_id = $1 ORDER BY id",
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []models.Board{}
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Background, &b.Visibility, &b.WorkspaceID, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// CreateBoard membuat board di bawah workspace. workspace_id selalu diambil
// dari parent yang sudah divalidasi, bukan dari body request.
func CreateBoard(db *sql.DB, workspaceID, createdBy int, name, background, visibility string) (models.Board, error) {
	b := models.Board{
		Name:        name,
		Background:  background,
		Visibility:  visibility,
		WorkspaceID: workspaceID,
		CreatedBy:   sql.NullInt64{Int64: int64(createdBy), Valid: true},
	}
	err := db.QueryRow(
		"INSERT INTO boards (name, background, visibility, workspace_id, created_by) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		name, background, visibility, workspaceID, createdBy,
	).Scan(&b.ID, &b.CreatedAt)
	return b, err
}

// FindBoard mengambil board dengan memvalidasi rantai board -> workspace -> owner.
func FindBoard(db *sql.DB, boardID, ownerID int) (models.Board, error) {
	var b models.Board
	err := db.QueryRow(`
		SELECT b.id, b.name, b.background, b.visibility, b.workspace_id, b.created_by, b.created_at, w.owner_id
		FROM boards b
		JOIN workspaces w ON b.workspace_id = w.id
		WHERE b.id = $1 AND w.owner_id = $2`,
		boardID, ownerID,
	).Scan(&b.ID, &b.Name, &b.Background, &b.Visibility, &b.WorkspaceID, &b.CreatedBy, &b.CreatedAt, &b.OwnerID)
	return b, err
}

// ListLists mengambil list di bawah board yang sudah divalidasi.
func ListLists(db *sql.DB, boardID int) ([]models.List, error) {
	rows, err := db.Query(
		"SELECT id, name, background, visibility, board_id FROM lists WHERE board_id = $1 ORDER BY id",
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Name, &l.Background, &l.Visibility, &l.BoardID); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CreateList membuat list di bawah board yang sudah divalidasi.
func CreateList(db *sql.DB, boardID int, name, background, visibility string) (models.List, error) {
	l := models.List{Name: name, Background: background, Visibility: visibility, BoardID: boardID}
	err := db.QueryRow(
		"INSERT INTO lists (name, background, visibility, board_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, background, visibility, boardID,
	).Scan(&l.ID)
	return l, err
}

// FindList memvalidasi rantai penuh list -> board -> workspace -> owner.
// Memeriksa workspace root saja tidak cukup; setiap hop ikut dicek di JOIN.
func FindList(db *sql.DB, listID, ownerID int) (models.List, error) {
	var l models.List
	err := db.QueryRow(`
		SELECT l.id, l.name, l.background, l.visibility, l.board_id, w.owner_id
		FROM lists l
		JOIN boards b ON l.board_id = b.id
		JOIN workspaces w ON b.workspace_id = w.id
		WHERE l.id = $1 AND w.owner_id = $2`,
		listID, ownerID,
	).Scan(&l.ID, &l.Name, &l.Background, &l.Visibility, &l.BoardID, &l.OwnerID)
	return l, err
}

// ListCards mengambil card di bawah list yang sudah divalidasi.
func ListCards(db *sql.DB, listID int) ([]models.Card, error) {
	rows, err := db.Query(
		"SELECT id, name, background, visibility, status, list_id FROM cards WHERE list_id = $1 ORDER BY id",
		listID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Background, &card.Visibility, &card.Status, &card.ListID); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// CreateCard membuat card di bawah list yang sudah divalidasi.
func CreateCard(db *sql.DB, listID int, name, background, visibility, status string) (models.Card, error) {
	card := models.Card{Name: name, Background: background, Visibility: visibility, Status: status, ListID: listID}
	err := db.QueryRow(
		"INSERT INTO cards (name, background, visibility, status, list_id) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		name, background, visibility, status, listID,
	).Scan(&card.ID)
	return card, err
}

// FindCard memvalidasi rantai penuh card -> list -> board -> workspace -> owner.
func FindCard(db *sql.DB, cardID, ownerID int) (models.Card, error) {
	var card models.Card
	err := db.QueryRow(`
		SELECT c.id, c.name, c.background, c.visibility, c.status, c.list_id, w.owner_id
		FROM cards c
		JOIN lists l ON c.list_id = l.id
		JOIN boards b ON l.board_id = b.id
		JOIN workspaces w ON b.workspace_id = w.id
		WHERE c.id = $1 AND w.owner_id = $2`,
		cardID, ownerID,
	).Scan(&card.ID, &card.Name, &card.Background, &card.Visibility, &card.Status, &card.ListID, &card.OwnerID)
	return card, err
}

// UpdateCard melakukan partial update pada card yang sudah divalidasi.
func UpdateCard(db *sql.DB, cardID int, name, background, visibility, status *string) error {
	_, err := db.Exec(`
		UPDATE cards
		SET name = COALESCE($1, name),
			background = COALESCE($2, background),
			visibility = COALESCE($3, visibility),
			status = COALESCE($4, status)
		WHERE id = $5`,
		name, background, visibility, status, cardID,
	)
	return err
}

// DeleteCard menghapus card yang sudah divalidasi.
func DeleteCard(db *sql.DB, cardID int) error {
	_, err := db.Exec("DELETE FROM cards WHERE id = $1", cardID)
	return err
}

// DeleteListCascade menghapus list beserta card di dalamnya.
func DeleteListCascade(db *sql.DB, listID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cards WHERE list_id = $1", listID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM lists WHERE id = $1", listID); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteBoardCascade menghapus board beserta list dan card di bawahnya.
func DeleteBoardCascade(db *sql.DB, boardID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cards WHERE list_id IN (SELECT id FROM lists WHERE board_id = $1)", boardID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM lists WHERE board_id = $1", boardID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM boards WHERE id = $1", boardID); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteWorkspaceCascade menghapus workspace beserta board, list, dan card di bawahnya.
func DeleteWorkspaceCascade(db *sql.DB, workspaceID int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM cards WHERE list_id IN (
			SELECT l.id FROM lists l
			JOIN boards b ON l.board_id = b.id
			WHERE b.workspace_id = $1)`,
		`DELETE FROM lists WHERE board_id IN (SELECT id FROM boards WHERE workspace_id = $1)`,
		`DELETE FROM boards WHERE workspace_id = $1`,
		`DELETE FROM workspaces WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, workspaceID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
