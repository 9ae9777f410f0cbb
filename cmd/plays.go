package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// Stations lists the backend's station directory.
func (r *Runner) Stations(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching station directory")

	stations, err := r.catalog.Stations(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stations: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stations, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Stations")

	if len(stations) == 0 {
		r.writePlain("No stations in the directory.\n")
		return nil
	}

	for _, station := range stations {
		r.writePlain("%-12s %s\n", station.ID, station.Name)
	}

	return nil
}

// Plays fetches and prints the weekly play series for one song.
func (r *Runner) Plays(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.String("song")
	stationID := cmd.String("station")

	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching play series", "song", songID, "station", stationID)

	series, err := r.catalog.PlaySeries(ctx, songID, stationID)
	if err != nil {
		return fmt.Errorf("failed to fetch play series: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(series, cmd.Bool("pretty"))
	}

	title := fmt.Sprintf("Weekly plays for %s", songID)
	if stationID != "" {
		title += fmt.Sprintf(" on %s", stationID)
	}
	r.writePlainHeader(title)

	if series.Len() == 0 {
		r.writePlain("No plays recorded.\n")
		return nil
	}

	deltas := series.Deltas()
	for i := 0; i < series.Len(); i++ {
		week := series.Labels[i]
		if start, err := shared.ParseWeek(series.Labels[i]); err == nil {
			week = shared.WeekLabelRange(start)
		}
		r.writePlain("%-26s %5d  (%+d)\n", week, series.Values[i], deltas[i])
	}
	r.writePlainln("Total: %d plays over %d weeks", series.Total(), series.Len())

	return nil
}
