package typeahead

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spintrack/internal/models"
)

// SuggestionStore persists suggestion sets keyed by search scope and query.
// The sqlite-backed implementation lives in the repositories package.
type SuggestionStore interface {
	Lookup(scope, query string) (*models.CachedSuggestion, error)
	Put(scope, query string, results []models.SearchResult, fetchedAt time.Time) error
}

// CachedSearcher wraps a remote Searcher with a read-through suggestion
// cache. Fresh entries short-circuit the network; misses and expired entries
// go remote and write the answer back. Cache failures never surface: a broken
// store degrades to plain remote search, and a dead backend falls back to an
// expired entry when one exists.
type CachedSearcher struct {
	scope  string
	remote Searcher
	store  SuggestionStore
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

var _ Searcher = (*CachedSearcher)(nil)

// NewCachedSearcher creates a caching searcher for one search scope
// ("artists", "songs"). Entries older than ttl are treated as expired.
func NewCachedSearcher(scope string, remote Searcher, store SuggestionStore, ttl time.Duration, logger *log.Logger) *CachedSearcher {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedSearcher{
		scope:  scope,
		remote: remote,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Search implements Searcher.
func (c *CachedSearcher) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	cached, err := c.store.Lookup(c.scope, query)
	if err != nil {
		c.logger.Debug("suggestion cache lookup failed", "scope", c.scope, "query", query, "error", err)
	}
	if cached != nil && cached.Fresh(c.ttl, c.now()) {
		return cached.Results(), nil
	}

	results, err := c.remote.Search(ctx, query)
	if err != nil {
		if cached != nil {
			c.logger.Debug("backend unavailable, serving expired suggestions", "scope", c.scope, "query", query)
			return cached.Results(), nil
		}
		return nil, err
	}

	if err := c.store.Put(c.scope, query, results, c.now()); err != nil {
		c.logger.Debug("suggestion cache write failed", "scope", c.scope, "query", query, "error", err)
	}
	return results, nil
}
