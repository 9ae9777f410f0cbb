package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
	tu "github.com/desertthunder/spintrack/internal/testing"
)

func testCatalog() *tu.MockCatalog {
	return &tu.MockCatalog{
		SongMetaFn: func(ctx context.Context, songID string) (*models.SongMeta, error) {
			return &models.SongMeta{
				SongID:  songID,
				Title:   "Believe",
				Artists: []models.ArtistRef{{ID: "7", Name: "Cher"}},
			}, nil
		},
		PlaySeriesFn: func(ctx context.Context, songID, stationID string) (*models.PlaySeries, error) {
			if stationID == "" {
				return &models.PlaySeries{Labels: []string{"2026-08-10", "2026-08-17"}, Values: []int{12, 19}}, nil
			}
			return &models.PlaySeries{Labels: []string{"2026-08-10", "2026-08-17"}, Values: []int{3, 5}}, nil
		},
		StationsFn: func(ctx context.Context) ([]models.Station, error) {
			return []models.Station{
				{ID: "st1", Name: "KEXP"},
				{ID: "st2", Name: "WFMU"},
			}, nil
		},
	}
}

func TestSeriesEngineReport(t *testing.T) {
	ctx := context.Background()

	t.Run("national-only report", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		result, err := engine.Report(ctx, nil, "s1", ReportOpts{})
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if result.Report.Title() != "Believe" {
			t.Errorf("unexpected title: %s", result.Report.Title())
		}
		if result.Report.National.Total() != 31 {
			t.Errorf("unexpected national total: %d", result.Report.National.Total())
		}
		if len(result.Report.Stations) != 0 {
			t.Errorf("expected no station series, got %d", len(result.Report.Stations))
		}
	})

	t.Run("all stations report", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		result, err := engine.Report(ctx, nil, "s1", ReportOpts{AllStations: true})
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if len(result.Report.Stations) != 2 {
			t.Fatalf("expected 2 station series, got %d", len(result.Report.Stations))
		}
		if result.Report.Stations[0].Station.Name != "KEXP" {
			t.Errorf("expected directory order, got %s first", result.Report.Stations[0].Station.Name)
		}
	})

	t.Run("explicit station list resolves against the directory", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		result, err := engine.Report(ctx, nil, "s1", ReportOpts{StationIDs: []string{"st2"}})
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if len(result.Report.Stations) != 1 || result.Report.Stations[0].Station.ID != "st2" {
			t.Errorf("unexpected stations: %v", result.Report.Stations)
		}
	})

	t.Run("unknown station fails fast", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		if _, err := engine.Report(ctx, nil, "s1", ReportOpts{StationIDs: []string{"nope"}}); !errors.Is(err, shared.ErrStationNotFound) {
			t.Errorf("expected ErrStationNotFound, got %v", err)
		}
	})

	t.Run("failed station series is skipped and recorded", func(t *testing.T) {
		catalog := testCatalog()
		catalog.PlaySeriesFn = func(ctx context.Context, songID, stationID string) (*models.PlaySeries, error) {
			if stationID == "st1" {
				return nil, errors.New("status 500")
			}
			return &models.PlaySeries{Labels: []string{"2026-08-10"}, Values: []int{4}}, nil
		}
		engine := NewSeriesEngine(catalog)

		result, err := engine.Report(ctx, nil, "s1", ReportOpts{AllStations: true})
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if len(result.Report.Stations) != 1 || result.Report.Stations[0].Station.ID != "st2" {
			t.Errorf("expected only st2 series, got %v", result.Report.Stations)
		}
		if len(result.FailedStations) != 1 || result.FailedStations[0].Station.ID != "st1" {
			t.Errorf("expected st1 recorded as failed, got %v", result.FailedStations)
		}
	})

	t.Run("metadata failure aborts the run", func(t *testing.T) {
		catalog := testCatalog()
		catalog.SongMetaFn = func(ctx context.Context, songID string) (*models.SongMeta, error) {
			return nil, shared.ErrSongNotFound
		}
		engine := NewSeriesEngine(catalog)

		if _, err := engine.Report(ctx, nil, "missing", ReportOpts{}); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("national series failure aborts the run", func(t *testing.T) {
		catalog := testCatalog()
		catalog.PlaySeriesFn = func(ctx context.Context, songID, stationID string) (*models.PlaySeries, error) {
			return nil, shared.ErrAPIRequest
		}
		engine := NewSeriesEngine(catalog)

		if _, err := engine.Report(ctx, nil, "s1", ReportOpts{}); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("missing song id is rejected", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		if _, err := engine.Report(ctx, nil, "", ReportOpts{}); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("nil catalog is rejected", func(t *testing.T) {
		engine := NewSeriesEngine(nil)

		if _, err := engine.Report(ctx, nil, "s1", ReportOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("emits progress updates without blocking", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		// Unbuffered channel with no reader: sends must be dropped, not block.
		progress := make(chan ProgressUpdate)
		if _, err := engine.Report(ctx, progress, "s1", ReportOpts{AllStations: true}); err != nil {
			t.Fatalf("Report failed: %v", err)
		}
	})

	t.Run("progress phases arrive in order", func(t *testing.T) {
		engine := NewSeriesEngine(testCatalog())

		progress := make(chan ProgressUpdate, 32)
		if _, err := engine.Report(ctx, progress, "s1", ReportOpts{AllStations: true}); err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 4 {
			t.Fatalf("expected at least 4 updates, got %d", len(phases))
		}
		if phases[0] != FetchMeta || phases[1] != FetchNational || phases[2] != FetchStations {
			t.Errorf("unexpected phase order: %v", phases)
		}
	})
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		FetchMeta:          "fetch_meta",
		FetchNational:      "fetch_national",
		FetchStations:      "fetch_stations",
		FetchStationSeries: "fetch_station_series",
		ExportReport:       "export_report",
		WriteManifest:      "write_manifest",
		Phase(99):          "",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
