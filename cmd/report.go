package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spintrack/internal/formatter"
	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/desertthunder/spintrack/internal/tasks"
	"github.com/urfave/cli/v3"
)

// drainProgress prints progress updates until the channel closes. The returned
// channel is closed once the printer goroutine has finished.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Total > 1 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()
	return done
}

// ReportRun assembles a play-series report for one song and writes it in the
// requested format.
func (r *Runner) ReportRun(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.String("song")
	format := cmd.String("format")
	output := cmd.String("output")

	if r.engine == nil {
		return fmt.Errorf("%w: report engine not initialized", shared.ErrServiceUnavailable)
	}

	opts := tasks.ReportOpts{
		StationIDs:  cmd.StringSlice("station"),
		AllStations: cmd.Bool("all-stations"),
	}

	r.logger.Info("assembling report", "song", songID, "stations", len(opts.StationIDs), "all", opts.AllStations)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := r.drainProgress(progress)

	result, err := r.engine.Report(ctx, progress, songID, opts)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	for _, failure := range result.FailedStations {
		r.logger.Warn("station skipped", "station", failure.Station.Name, "error", failure.Error)
	}

	report := result.Report

	switch format {
	case "json":
		return r.writeJSON(report, true)
	case "csv":
		base := output
		if base == "" {
			base = songID
		}
		csvResult, err := formatter.WriteCSVExport(report, base)
		if err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
		r.writePlainln("✓ Wrote %s and %s", csvResult.SeriesFile, csvResult.MetadataFile)
		return nil
	case "markdown":
		dir := output
		if dir == "" {
			dir = songID
		}
		imageURL := ""
		if report.Meta != nil {
			imageURL = report.Meta.CoverURL
		}
		mdResult, err := formatter.WriteMarkdownExport(report, dir, imageURL)
		if err != nil {
			return fmt.Errorf("markdown export failed: %w", err)
		}
		r.writePlainln("✓ Wrote %d files to %s", len(mdResult.Files), mdResult.Directory)
		return nil
	case "text", "":
		if output != "" {
			path, err := formatter.WriteTextExport(report, output)
			if err != nil {
				return fmt.Errorf("text export failed: %w", err)
			}
			r.writePlainln("✓ Wrote %s", path)
			return nil
		}
		text, err := formatter.ExportToText(report)
		if err != nil {
			return fmt.Errorf("text export failed: %w", err)
		}
		_, err = r.output.Write(text)
		return err
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ReportBulk exports reports for many songs concurrently.
func (r *Runner) ReportBulk(ctx context.Context, cmd *cli.Command) error {
	songIDs := cmd.Args().Slice()
	if len(songIDs) == 0 {
		return fmt.Errorf("%w: at least one song ID is required", shared.ErrMissingArgument)
	}

	if r.engine == nil {
		return fmt.Errorf("%w: report engine not initialized", shared.ErrServiceUnavailable)
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Report: tasks.ReportOpts{
			AllStations: cmd.Bool("all-stations"),
		},
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = r.config.Search.RateLimit
	}

	r.logger.Info("starting bulk export", "songs", len(songIDs), "format", opts.Format, "workers", opts.NumWorkers)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := r.drainProgress(progress)

	result, err := r.engine.BulkExport(ctx, progress, songIDs, opts)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	r.writePlainHeader("Bulk export complete")
	r.writePlain("Songs:      %d\n", result.TotalSongs)
	r.writePlain("Succeeded:  %d\n", result.SuccessfulExports)
	r.writePlain("Failed:     %d\n", result.FailedExports)
	r.writePlain("Output dir: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest:   %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("✗ %s: %s\n", res.SongID, res.Error)
			}
		}
	}

	return nil
}
