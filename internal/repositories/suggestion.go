package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

// SuggestionRepository implements models.Repository[*models.CachedSuggestion]
// for the suggestion cache.
//
// Each row stores the full result set of one (scope, query) pair as JSON, so
// a cache hit reproduces exactly what the backend answered, in backend order.
type SuggestionRepository struct {
	db *sql.DB
}

// NewSuggestionRepository creates a new SuggestionRepository with the given database connection
func NewSuggestionRepository(db *sql.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create inserts a new [models.CachedSuggestion] into the database with generated ID and sequence
func (r *SuggestionRepository) Create(entry *models.CachedSuggestion) error {
	sequence, err := NextSequence(r.db, "suggestions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)
	entry.SetSequence(sequence)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	results, err := json.Marshal(entry.Results())
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	query := `
		INSERT INTO suggestions (id, sequence, scope, query, results, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.Scope(),
		entry.Query(),
		string(results),
		entry.FetchedAt(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert suggestion entry: %w", err)
	}

	return nil
}

// Get retrieves a cache entry by ID, excluding soft-deleted entries
func (r *SuggestionRepository) Get(id string) (*models.CachedSuggestion, error) {
	query := `
		SELECT id, sequence, scope, query, results, fetched_at, created_at, updated_at, deleted_at
		FROM suggestions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByScopeQuery retrieves the cache entry for one (scope, query) pair
func (r *SuggestionRepository) GetByScopeQuery(scope, queryText string) (*models.CachedSuggestion, error) {
	query := `
		SELECT id, sequence, scope, query, results, fetched_at, created_at, updated_at, deleted_at
		FROM suggestions
		WHERE scope = ? AND query = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, scope, queryText))
}

// Update modifies an existing cache entry in the database
func (r *SuggestionRepository) Update(entry *models.CachedSuggestion) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	results, err := json.Marshal(entry.Results())
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE suggestions
		SET results = ?, fetched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, string(results), entry.FetchedAt(), now, entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update suggestion entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: suggestion entry %s", shared.ErrRecordNotFound, entry.ID())
	}

	return nil
}

// Delete soft-deletes a cache entry by ID
func (r *SuggestionRepository) Delete(id string) error {
	query := `
		UPDATE suggestions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: suggestion entry %s", shared.ErrRecordNotFound, id)
	}

	return nil
}

// List retrieves all cache entries matching the given criteria, excluding soft-deleted entries
func (r *SuggestionRepository) List(criteria map[string]any) ([]*models.CachedSuggestion, error) {
	query := `
		SELECT id, sequence, scope, query, results, fetched_at, created_at, updated_at, deleted_at
		FROM suggestions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if scope, ok := criteria["scope"].(string); ok && scope != "" {
		query += " AND scope = ?"
		args = append(args, scope)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestion entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CachedSuggestion
	for rows.Next() {
		entry, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Lookup implements the typeahead package's SuggestionStore. A cache miss
// returns nil without an error.
func (r *SuggestionRepository) Lookup(scope, queryText string) (*models.CachedSuggestion, error) {
	entry, err := r.GetByScopeQuery(scope, queryText)
	if err != nil {
		if errors.Is(err, shared.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// Put implements the typeahead package's SuggestionStore, upserting the
// result set for one (scope, query) pair.
func (r *SuggestionRepository) Put(scope, queryText string, results []models.SearchResult, fetchedAt time.Time) error {
	existing, err := r.Lookup(scope, queryText)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.SetResults(results, fetchedAt)
		return r.Update(existing)
	}
	return r.Create(models.NewCachedSuggestion(0, scope, queryText, results, fetchedAt))
}

// PruneOlderThan soft-deletes every cache entry fetched before the cutoff and
// returns the number of entries pruned.
func (r *SuggestionRepository) PruneOlderThan(cutoff time.Time) (int, error) {
	query := `
		UPDATE suggestions
		SET deleted_at = ?
		WHERE fetched_at < ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune suggestion entries: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// Clear soft-deletes every cache entry and returns the number cleared.
func (r *SuggestionRepository) Clear() (int, error) {
	result, err := r.db.Exec("UPDATE suggestions SET deleted_at = ? WHERE deleted_at IS NULL", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear suggestion cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// scanOne scans a single [sql.Row] into a [models.CachedSuggestion]
func (r *SuggestionRepository) scanOne(row *sql.Row) (*models.CachedSuggestion, error) {
	var (
		id        string
		sequence  int
		scope     string
		queryText string
		rawResult string
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &scope, &queryText, &rawResult, &fetchedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: suggestion entry", shared.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan suggestion entry: %w", err)
	}

	return buildSuggestion(id, sequence, scope, queryText, rawResult, fetchedAt, createdAt, updatedAt, deletedAt)
}

// scanRow scans a row from [sql.Rows] into a [models.CachedSuggestion]
func (r *SuggestionRepository) scanRow(rows *sql.Rows) (*models.CachedSuggestion, error) {
	var (
		id        string
		sequence  int
		scope     string
		queryText string
		rawResult string
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &scope, &queryText, &rawResult, &fetchedAt, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan suggestion entry: %w", err)
	}

	return buildSuggestion(id, sequence, scope, queryText, rawResult, fetchedAt, createdAt, updatedAt, deletedAt)
}

func buildSuggestion(id string, sequence int, scope, queryText, rawResult string, fetchedAt, createdAt, updatedAt time.Time, deletedAt sql.NullTime) (*models.CachedSuggestion, error) {
	var results []models.SearchResult
	if err := json.Unmarshal([]byte(rawResult), &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	entry := models.NewCachedSuggestion(sequence, scope, queryText, results, fetchedAt)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
