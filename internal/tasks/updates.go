package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchMeta Phase = iota
	FetchNational
	FetchStations
	FetchStationSeries
	ExportReport
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchMeta:
		return "fetch_meta"
	case FetchNational:
		return "fetch_national"
	case FetchStations:
		return "fetch_stations"
	case FetchStationSeries:
		return "fetch_station_series"
	case ExportReport:
		return "export_report"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchMetaUpdate(songID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMeta,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching song metadata (%s)...", songID),
	}
}

func fetchNationalUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchNational,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching national play series for %s...", title),
	}
}

func fetchStationsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStations,
		Step:    1,
		Total:   1,
		Message: "Fetching station directory...",
	}
}

func stationSeriesUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStationSeries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching play series (%s)...", name),
	}
}

func stationSeriesFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStationSeries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Skipping %s: %v", name, err),
		Data:    err,
	}
}

func exportStartedUpdate(step, total int, songID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting report (%s)...", songID),
	}
}

func exportCompletedUpdate(step, total int, title string, fileCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %s (%d files)", title, fileCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Export failed for %s: %v", title, err),
		Data:    err,
	}
}

func writeManifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest (%s)...", path),
	}
}
