package typeahead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
)

type memoryStore struct {
	entries   map[string]*models.CachedSuggestion
	lookupErr error
	putErr    error
	puts      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*models.CachedSuggestion)}
}

func (m *memoryStore) key(scope, query string) string { return scope + "\x00" + query }

func (m *memoryStore) Lookup(scope, query string) (*models.CachedSuggestion, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.entries[m.key(scope, query)], nil
}

func (m *memoryStore) Put(scope, query string, results []models.SearchResult, fetchedAt time.Time) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[m.key(scope, query)] = models.NewCachedSuggestion(m.puts, scope, query, results, fetchedAt)
	return nil
}

func (m *memoryStore) seed(scope, query string, results []models.SearchResult, fetchedAt time.Time) {
	m.entries[m.key(scope, query)] = models.NewCachedSuggestion(0, scope, query, results, fetchedAt)
}

func TestCachedSearcher(t *testing.T) {
	ctx := context.Background()
	ttl := 15 * time.Minute
	cherResults := []models.SearchResult{{ID: "7", Label: "Cher"}}

	t.Run("fresh entry skips the backend", func(t *testing.T) {
		remote := newScriptedSearcher()
		store := newMemoryStore()
		store.seed("artists", "cher", cherResults, time.Now())
		cached := NewCachedSearcher("artists", remote, store, ttl, nil)

		got, err := cached.Search(ctx, "cher")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "7" {
			t.Errorf("expected cached results, got %v", got)
		}
		if remote.callCount() != 0 {
			t.Errorf("expected no backend call, got %d", remote.callCount())
		}
	})

	t.Run("miss goes remote and writes back", func(t *testing.T) {
		remote := newScriptedSearcher()
		remote.results["cher"] = cherResults
		store := newMemoryStore()
		cached := NewCachedSearcher("artists", remote, store, ttl, nil)

		got, err := cached.Search(ctx, "cher")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected remote results, got %v", got)
		}
		entry, _ := store.Lookup("artists", "cher")
		if entry == nil || len(entry.Results()) != 1 {
			t.Errorf("expected write-back entry, got %v", entry)
		}
	})

	t.Run("expired entry refreshes from the backend", func(t *testing.T) {
		remote := newScriptedSearcher()
		remote.results["cher"] = cherResults
		store := newMemoryStore()
		store.seed("artists", "cher", []models.SearchResult{{ID: "stale", Label: "Old"}}, time.Now().Add(-time.Hour))
		cached := NewCachedSearcher("artists", remote, store, ttl, nil)

		got, err := cached.Search(ctx, "cher")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "7" {
			t.Errorf("expected refreshed results, got %v", got)
		}
	})

	t.Run("dead backend falls back to an expired entry", func(t *testing.T) {
		remote := newScriptedSearcher()
		remote.errs["cher"] = errors.New("connection refused")
		store := newMemoryStore()
		store.seed("artists", "cher", cherResults, time.Now().Add(-time.Hour))
		cached := NewCachedSearcher("artists", remote, store, ttl, nil)

		got, err := cached.Search(ctx, "cher")
		if err != nil {
			t.Fatalf("expected stale fallback, got error %v", err)
		}
		if len(got) != 1 || got[0].ID != "7" {
			t.Errorf("expected stale results, got %v", got)
		}
	})

	t.Run("dead backend with no entry returns the error", func(t *testing.T) {
		remote := newScriptedSearcher()
		remote.errs["cher"] = errors.New("connection refused")
		cached := NewCachedSearcher("artists", remote, newMemoryStore(), ttl, nil)

		if _, err := cached.Search(ctx, "cher"); err == nil {
			t.Error("expected error when backend and cache both miss")
		}
	})

	t.Run("store failures degrade to plain remote search", func(t *testing.T) {
		remote := newScriptedSearcher()
		remote.results["cher"] = cherResults
		store := newMemoryStore()
		store.lookupErr = errors.New("database is locked")
		store.putErr = errors.New("database is locked")
		cached := NewCachedSearcher("artists", remote, store, ttl, nil)

		got, err := cached.Search(ctx, "cher")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected remote results despite store failure, got %v", got)
		}
	})
}
