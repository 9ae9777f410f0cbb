package models

import (
	"fmt"
	"time"
)

var (
	_ Model = (*CachedSuggestion)(nil)
	_ Model = (*Selection)(nil)
)

// CachedSuggestion is a persisted suggestion set for one (scope, query) pair.
//
// Scope names the search endpoint the results came from ("artists", "songs");
// FetchedAt records when the backend last answered the query, which drives
// cache freshness decisions.
type CachedSuggestion struct {
	id        string
	sequence  int
	scope     string
	query     string
	results   []SearchResult
	fetchedAt time.Time
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedSuggestion creates a cache entry for the given scope and query.
func NewCachedSuggestion(sequence int, scope, query string, results []SearchResult, fetchedAt time.Time) *CachedSuggestion {
	now := time.Now()
	return &CachedSuggestion{
		sequence:  sequence,
		scope:     scope,
		query:     query,
		results:   results,
		fetchedAt: fetchedAt,
		createdAt: now,
		updatedAt: now,
	}
}

func (c *CachedSuggestion) ID() string               { return c.id }
func (c *CachedSuggestion) Sequence() int            { return c.sequence }
func (c *CachedSuggestion) Scope() string            { return c.scope }
func (c *CachedSuggestion) Query() string            { return c.query }
func (c *CachedSuggestion) Results() []SearchResult  { return c.results }
func (c *CachedSuggestion) FetchedAt() time.Time     { return c.fetchedAt }
func (c *CachedSuggestion) CreatedAt() time.Time     { return c.createdAt }
func (c *CachedSuggestion) UpdatedAt() time.Time     { return c.updatedAt }
func (c *CachedSuggestion) DeletedAt() *time.Time    { return c.deletedAt }
func (c *CachedSuggestion) SetID(id string)          { c.id = id }
func (c *CachedSuggestion) SetSequence(seq int)      { c.sequence = seq }
func (c *CachedSuggestion) SetResults(r []SearchResult, fetchedAt time.Time) {
	c.results = r
	c.fetchedAt = fetchedAt
}
func (c *CachedSuggestion) SetCreatedAt(t time.Time)  { c.createdAt = t }
func (c *CachedSuggestion) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *CachedSuggestion) SetDeletedAt(t *time.Time) { c.deletedAt = t }

// Fresh reports whether the entry was fetched within the given TTL.
func (c *CachedSuggestion) Fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(c.fetchedAt) <= ttl
}

// Validate checks that the cache entry carries a scope and a query.
func (c *CachedSuggestion) Validate() error {
	if c.scope == "" {
		return fmt.Errorf("cached suggestion requires a scope")
	}
	if c.query == "" {
		return fmt.Errorf("cached suggestion requires a query")
	}
	return nil
}

// Selection is a resolved label/identifier pair committed through the typeahead.
type Selection struct {
	id         string
	sequence   int
	scope      string
	label      string
	resolvedID string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewSelection creates a selection record for a committed resolution.
func NewSelection(sequence int, scope, label, resolvedID string) *Selection {
	now := time.Now()
	return &Selection{
		sequence:   sequence,
		scope:      scope,
		label:      label,
		resolvedID: resolvedID,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (s *Selection) ID() string                { return s.id }
func (s *Selection) Sequence() int             { return s.sequence }
func (s *Selection) Scope() string             { return s.scope }
func (s *Selection) Label() string             { return s.label }
func (s *Selection) ResolvedID() string        { return s.resolvedID }
func (s *Selection) CreatedAt() time.Time      { return s.createdAt }
func (s *Selection) UpdatedAt() time.Time      { return s.updatedAt }
func (s *Selection) DeletedAt() *time.Time     { return s.deletedAt }
func (s *Selection) SetID(id string)           { s.id = id }
func (s *Selection) SetSequence(seq int)       { s.sequence = seq }
func (s *Selection) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *Selection) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Selection) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// Validate checks that the selection carries a scope and a label.
func (s *Selection) Validate() error {
	if s.scope == "" {
		return fmt.Errorf("selection requires a scope")
	}
	if s.label == "" {
		return fmt.Errorf("selection requires a label")
	}
	return nil
}
