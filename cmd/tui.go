package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spintrack/internal/repositories"
	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/desertthunder/spintrack/internal/typeahead"
	"github.com/desertthunder/spintrack/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for catalog search and reports.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: report engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spintrack-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	debounce := r.config.Search.DebounceInterval()

	artists, err := r.registry.Attach(typeahead.BindingOpts{
		InputID:  "artist_search",
		HiddenID: "artist_id",
		Searcher: r.searcher(ui.ScopeArtists),
		Debounce: debounce,
		Logger:   r.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to attach artist binding: %w", err)
	}

	songs, err := r.registry.Attach(typeahead.BindingOpts{
		InputID:  "song_search",
		HiddenID: "song_id",
		Searcher: r.searcher(ui.ScopeSongs),
		Debounce: debounce,
		Logger:   r.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to attach song binding: %w", err)
	}
	defer r.registry.Close()

	var selections ui.SelectionRecorder
	if db, err := r.database(); err == nil {
		selections = repositories.NewSelectionRepository(db)
	} else {
		r.logger.Warn("selection history unavailable", "error", err)
	}

	model := ui.NewModel(ctx, artists, songs, r.engine, selections)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
