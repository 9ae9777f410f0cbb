package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

// SelectionRepository implements models.Repository[*models.Selection] for the
// selection history.
//
// A row is recorded whenever a typeahead resolution is committed, so recent
// picks can be replayed as search shortcuts.
type SelectionRepository struct {
	db *sql.DB
}

// NewSelectionRepository creates a new SelectionRepository with the given database connection
func NewSelectionRepository(db *sql.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create inserts a new [models.Selection] into the database with generated ID and sequence
func (r *SelectionRepository) Create(selection *models.Selection) error {
	sequence, err := NextSequence(r.db, "selections")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	selection.SetID(id)
	selection.SetSequence(sequence)

	if err := selection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO selections (id, sequence, scope, label, resolved_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		selection.Scope(),
		selection.Label(),
		selection.ResolvedID(),
		selection.CreatedAt(),
		selection.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}

	return nil
}

// Get retrieves a selection by ID, excluding soft-deleted selections
func (r *SelectionRepository) Get(id string) (*models.Selection, error) {
	query := `
		SELECT id, sequence, scope, label, resolved_id, created_at, updated_at, deleted_at
		FROM selections
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing selection in the database
func (r *SelectionRepository) Update(selection *models.Selection) error {
	if err := selection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	selection.SetUpdatedAt(now)

	query := `
		UPDATE selections
		SET label = ?, resolved_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, selection.Label(), selection.ResolvedID(), now, selection.ID())
	if err != nil {
		return fmt.Errorf("failed to update selection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: selection %s", shared.ErrRecordNotFound, selection.ID())
	}

	return nil
}

// Delete soft-deletes a selection by ID
func (r *SelectionRepository) Delete(id string) error {
	query := `
		UPDATE selections
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: selection %s", shared.ErrRecordNotFound, id)
	}

	return nil
}

// List retrieves all selections matching the given criteria, excluding soft-deleted selections.
//
// Supported criteria: "scope" (string), "limit" (int). Results are newest first.
func (r *SelectionRepository) List(criteria map[string]any) ([]*models.Selection, error) {
	query := `
		SELECT id, sequence, scope, label, resolved_id, created_at, updated_at, deleted_at
		FROM selections
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if scope, ok := criteria["scope"].(string); ok && scope != "" {
		query += " AND scope = ?"
		args = append(args, scope)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer rows.Close()

	var selections []*models.Selection
	for rows.Next() {
		selection, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return selections, nil
}

// Record stores a committed resolution as a new selection.
func (r *SelectionRepository) Record(scope, label, resolvedID string) (*models.Selection, error) {
	selection := models.NewSelection(0, scope, label, resolvedID)
	if err := r.Create(selection); err != nil {
		return nil, err
	}
	return selection, nil
}

// scanOne scans a single [sql.Row] into a [models.Selection]
func (r *SelectionRepository) scanOne(row *sql.Row) (*models.Selection, error) {
	var (
		id         string
		sequence   int
		scope      string
		label      string
		resolvedID string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := row.Scan(&id, &sequence, &scope, &label, &resolvedID, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: selection", shared.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan selection: %w", err)
	}

	return buildSelection(id, sequence, scope, label, resolvedID, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Selection]
func (r *SelectionRepository) scanRow(rows *sql.Rows) (*models.Selection, error) {
	var (
		id         string
		sequence   int
		scope      string
		label      string
		resolvedID string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &scope, &label, &resolvedID, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan selection: %w", err)
	}

	return buildSelection(id, sequence, scope, label, resolvedID, createdAt, updatedAt, deletedAt), nil
}

func buildSelection(id string, sequence int, scope, label, resolvedID string, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.Selection {
	selection := models.NewSelection(sequence, scope, label, resolvedID)
	selection.SetID(id)
	selection.SetCreatedAt(createdAt)
	selection.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		selection.SetDeletedAt(&deletedAt.Time)
	}

	return selection
}
