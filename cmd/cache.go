package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spintrack/internal/repositories"
	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats summarizes the suggestion cache contents per scope.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	suggestions := repositories.NewSuggestionRepository(db)

	entries, err := suggestions.List(map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}

	ttl := r.config.Search.CacheTTL()
	now := time.Now()

	perScope := map[string]int{}
	fresh := 0
	var oldest time.Time
	for _, entry := range entries {
		perScope[entry.Scope()]++
		if entry.Fresh(ttl, now) {
			fresh++
		}
		if oldest.IsZero() || entry.FetchedAt().Before(oldest) {
			oldest = entry.FetchedAt()
		}
	}

	if cmd.Bool("json") {
		stats := map[string]any{
			"entries":   len(entries),
			"fresh":     fresh,
			"stale":     len(entries) - fresh,
			"per_scope": perScope,
			"ttl_mins":  r.config.Search.CacheTTLMins,
		}
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Suggestion cache")
	r.writePlain("Entries: %d (%d fresh, %d stale)\n", len(entries), fresh, len(entries)-fresh)
	for scope, count := range perScope {
		r.writePlain("  %-10s %d\n", scope, count)
	}
	if !oldest.IsZero() {
		r.writePlain("Oldest fetch: %s\n", oldest.Format("2006-01-02 15:04:05"))
	}
	r.writePlain("TTL: %d minutes\n", r.config.Search.CacheTTLMins)

	return nil
}

// CacheClear removes every entry from the suggestion cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	cleared, err := repositories.NewSuggestionRepository(db).Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cache cleared", "entries", cleared)
	r.writePlainln("✓ Cleared %d cache entries", cleared)
	return nil
}

// CachePrune removes cache entries fetched before the cutoff.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	olderThan := cmd.Duration("older-than")
	if olderThan <= 0 {
		return fmt.Errorf("%w: --older-than must be a positive duration", shared.ErrInvalidFlag)
	}

	db, err := r.database()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-olderThan)
	pruned, err := repositories.NewSuggestionRepository(db).PruneOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	r.logger.Info("cache pruned", "entries", pruned, "cutoff", cutoff)
	r.writePlainln("✓ Pruned %d cache entries older than %v", pruned, olderThan)
	return nil
}

// cacheCommand handles suggestion cache maintenance
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and maintain the local suggestion cache",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show cache entry counts per scope",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cache entries",
				Action: r.CacheClear,
			},
			{
				Name:  "prune",
				Usage: "Remove cache entries older than a duration",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:     "older-than",
						Usage:    "Age cutoff, e.g. 24h or 30m",
						Required: true,
					},
				},
				Action: r.CachePrune,
			},
		},
	}
}
