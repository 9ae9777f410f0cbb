package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spintrack/internal/repositories"
	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/desertthunder/spintrack/internal/typeahead"
	"github.com/urfave/cli/v3"
)

// SearchArtists searches the artist catalog and prints the resolution.
func (r *Runner) SearchArtists(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, "artists")
}

// SearchSongs searches the song catalog and prints the resolution.
func (r *Runner) SearchSongs(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, "songs")
}

// searchOutput is the JSON shape of a search command's result.
type searchOutput struct {
	Scope      string               `json:"scope"`
	Query      string               `json:"query"`
	ResolvedID string               `json:"resolved_id"`
	Results    []searchOutputResult `json:"results"`
}

type searchOutputResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func (r *Runner) runSearch(ctx context.Context, cmd *cli.Command, scope string) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	var searcher typeahead.Searcher
	if cmd.Bool("no-cache") {
		if scope == "songs" {
			searcher = typeahead.SearcherFunc(r.catalog.SearchSongs)
		} else {
			searcher = typeahead.SearcherFunc(r.catalog.SearchArtists)
		}
	} else {
		searcher = r.searcher(scope)
	}

	r.logger.Info("searching catalog", "scope", scope, "query", query)

	results, err := searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	resolvedID := typeahead.ResolveLabel(query, results)

	if cmd.Bool("commit") {
		db, err := r.database()
		if err != nil {
			return fmt.Errorf("cannot record selection: %w", err)
		}
		selections := repositories.NewSelectionRepository(db)
		if _, err := selections.Record(scope, query, resolvedID); err != nil {
			return fmt.Errorf("failed to record selection: %w", err)
		}
		r.logger.Info("selection recorded", "scope", scope, "label", query, "resolved", resolvedID)
	}

	if cmd.Bool("json") {
		out := searchOutput{
			Scope:      scope,
			Query:      query,
			ResolvedID: resolvedID,
			Results:    make([]searchOutputResult, 0, len(results)),
		}
		for _, res := range results {
			out.Results = append(out.Results, searchOutputResult{ID: res.ID, Label: res.Label})
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Search %s: %q", scope, query))

	if len(results) == 0 {
		r.writePlain("No matches.\n")
	}
	for i, res := range results {
		r.writePlain("%2d. %s (%s)\n", i+1, res.Label, res.ID)
	}

	if resolvedID != "" {
		r.writePlainln("✓ Resolved: %s", resolvedID)
	} else {
		r.writePlainln("No exact label match; resolution is empty.")
	}

	return nil
}

// SearchHistory lists recently committed selections, newest first.
func (r *Runner) SearchHistory(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	criteria := map[string]any{
		"limit": cmd.Int("limit"),
	}
	if scope := cmd.String("scope"); scope != "" {
		criteria["scope"] = scope
	}

	selections, err := repositories.NewSelectionRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list selections: %w", err)
	}

	if cmd.Bool("json") {
		type historyEntry struct {
			Scope      string `json:"scope"`
			Label      string `json:"label"`
			ResolvedID string `json:"resolved_id"`
			CreatedAt  string `json:"created_at"`
		}
		entries := make([]historyEntry, 0, len(selections))
		for _, sel := range selections {
			entries = append(entries, historyEntry{
				Scope:      sel.Scope(),
				Label:      sel.Label(),
				ResolvedID: sel.ResolvedID(),
				CreatedAt:  sel.CreatedAt().Format("2006-01-02 15:04:05"),
			})
		}
		return r.writeJSON(entries, false)
	}

	r.writePlainHeader("Selection history")

	if len(selections) == 0 {
		r.writePlain("No selections recorded.\n")
		return nil
	}

	for _, sel := range selections {
		resolved := sel.ResolvedID()
		if resolved == "" {
			resolved = "(unresolved)"
		}
		r.writePlain("%s  [%s] %s → %s\n", sel.CreatedAt().Format("2006-01-02 15:04"), sel.Scope(), sel.Label(), resolved)
	}

	return nil
}
