// package tasks implements report assembly over the airplay admin backend.
//
// The core abstraction is SeriesEngine, which orchestrates metadata, national
// and per-station series fetches into a single report. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/services"
	"github.com/desertthunder/spintrack/internal/shared"
)

// StationFailure records a station whose series fetch failed during a report.
type StationFailure struct {
	Station models.Station // Station whose fetch failed
	Error   error          // Underlying fetch error
}

// ReportResult contains all data from a report assembly run.
type ReportResult struct {
	Report         *models.SeriesReport // Assembled report
	FailedStations []StationFailure     // Stations skipped due to fetch errors
}

// ReportOpts configures which series a report includes.
type ReportOpts struct {
	StationIDs  []string // Stations to break out; resolved against the directory
	AllStations bool     // Break out every station in the directory
}

// ReportEngine defines operations for assembling play-series reports.
type ReportEngine interface {
	// Report assembles song metadata, the national series, and any requested
	// per-station series into a single report.
	Report(ctx context.Context, progress chan<- ProgressUpdate, songID string, opts ReportOpts) (*ReportResult, error)
}

// SeriesEngine implements ReportEngine against the admin backend catalog.
type SeriesEngine struct {
	catalog services.Catalog
}

var _ ReportEngine = (*SeriesEngine)(nil)

// NewSeriesEngine creates a new SeriesEngine with the provided catalog client.
func NewSeriesEngine(catalog services.Catalog) *SeriesEngine {
	return &SeriesEngine{catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SeriesEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Report assembles a play-series report for one song.
//
// Metadata and national-series failures abort the run; a failed station
// series is recorded in FailedStations and skipped, so one dead station does
// not sink the whole report.
func (e *SeriesEngine) Report(ctx context.Context, progress chan<- ProgressUpdate, songID string, opts ReportOpts) (*ReportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if songID == "" {
		return nil, fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	e.sendProgress(progress, fetchMetaUpdate(songID))
	meta, err := e.catalog.SongMeta(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch song metadata: %w", err)
	}

	e.sendProgress(progress, fetchNationalUpdate(meta.Title))
	national, err := e.catalog.PlaySeries(ctx, songID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch national series: %w", err)
	}

	result := &ReportResult{
		Report: &models.SeriesReport{
			Meta:        meta,
			National:    *national,
			GeneratedAt: time.Now(),
		},
	}

	stations, err := e.resolveStations(ctx, progress, opts)
	if err != nil {
		return nil, err
	}

	for i, station := range stations {
		e.sendProgress(progress, stationSeriesUpdate(i+1, len(stations), station.Name))

		series, err := e.catalog.PlaySeries(ctx, songID, station.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.sendProgress(progress, stationSeriesFailedUpdate(i+1, len(stations), station.Name, err))
			result.FailedStations = append(result.FailedStations, StationFailure{Station: station, Error: err})
			continue
		}

		result.Report.Stations = append(result.Report.Stations, models.StationSeries{
			Station: station,
			Series:  *series,
		})
	}

	return result, nil
}

// resolveStations turns the report options into a concrete station list.
func (e *SeriesEngine) resolveStations(ctx context.Context, progress chan<- ProgressUpdate, opts ReportOpts) ([]models.Station, error) {
	if !opts.AllStations && len(opts.StationIDs) == 0 {
		return nil, nil
	}

	e.sendProgress(progress, fetchStationsUpdate())
	directory, err := e.catalog.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch station directory: %w", err)
	}

	if opts.AllStations {
		return directory, nil
	}

	byID := make(map[string]models.Station, len(directory))
	for _, station := range directory {
		byID[station.ID] = station
	}

	stations := make([]models.Station, 0, len(opts.StationIDs))
	for _, id := range opts.StationIDs {
		station, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrStationNotFound, id)
		}
		stations = append(stations, station)
	}

	return stations, nil
}
