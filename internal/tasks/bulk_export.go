package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/spintrack/internal/formatter"
	"github.com/desertthunder/spintrack/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk report exports.
type BulkExportOpts struct {
	Format     string     // Export format: json, csv, markdown, txt
	OutputDir  string     // Base output directory (default: airplay_export_{epoch})
	NumWorkers int        // Concurrent writers (default: 5)
	RateLimit  float64    // Backend requests per second (default: 5)
	Report     ReportOpts // Per-song report options
}

// SeriesExportJob pairs a song ID with its assembled report for a writer.
type SeriesExportJob struct {
	SongID string
	Result *ReportResult
}

// SeriesExportResult records the outcome of exporting one song's report.
type SeriesExportResult struct {
	SongID  string   `json:"song_id"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   error    `json:"-"`
}

// BulkExportResult summarizes a bulk report export.
type BulkExportResult struct {
	TotalSongs        int                  `json:"total_songs"`
	SuccessfulExports int                  `json:"successful_exports"`
	FailedExports     int                  `json:"failed_exports"`
	OutputDirectory   string               `json:"output_directory"`
	ManifestPath      string               `json:"manifest_path,omitempty"`
	Results           []SeriesExportResult `json:"results"`
}

// BulkExport assembles and exports reports for multiple songs concurrently
// with rate limiting and progress tracking.
//
// Report fetches run through a single rate-limited producer so the backend
// sees a bounded request rate; file writing fans out across a worker pool.
// Partial failures are recorded per song, and a manifest file summarizing the
// run is written last.
func (e *SeriesEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	songIDs []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("airplay_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSongs:      len(songIDs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SeriesExportResult, 0, len(songIDs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan SeriesExportJob, len(songIDs))
	results := make(chan SeriesExportResult, len(songIDs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, songID := range songIDs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(prog, exportStartedUpdate(i+1, len(songIDs), songID))

			reportResult, err := e.Report(ctx, nil, songID, opts.Report)
			if err != nil {
				results <- SeriesExportResult{
					SongID:  songID,
					Title:   fmt.Sprintf("Unknown (%s)", songID),
					Success: false,
					Error:   fmt.Errorf("failed to assemble report: %w", err),
				}
				continue
			}

			jobs <- SeriesExportJob{SongID: songID, Result: reportResult}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(songIDs), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(songIDs), res.Title, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, writeManifestUpdate(manifestPath))
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that writes report files from the jobs channel.
func (e *SeriesEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan SeriesExportJob,
	results chan<- SeriesExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleReport(job, opts)
	}
}

// exportSingleReport writes a single song's report in the requested format.
func (e *SeriesEngine) exportSingleReport(j SeriesExportJob, opts BulkExportOpts) SeriesExportResult {
	result := SeriesExportResult{
		SongID:  j.SongID,
		Title:   j.Result.Report.Title(),
		Success: false,
		Files:   []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.SongID)
		csvRes, err := formatter.WriteCSVExport(j.Result.Report, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.SeriesFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.SongID)

		var imageURL string
		if j.Result.Report.Meta != nil {
			imageURL = j.Result.Report.Meta.CoverURL
		}

		mdRes, err := formatter.WriteMarkdownExport(j.Result.Report, outputDir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_series.txt", j.SongID))
		path, err := formatter.WriteTextExport(j.Result.Report, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.SongID))
		data, err := shared.MarshalJSON(j.Result.Report, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// manifestEntry is the JSON shape of one song in the export manifest.
type manifestEntry struct {
	SongID  string   `json:"song_id"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// writeManifest records the outcome of a bulk export as JSON.
func writeManifest(result *BulkExportResult, format, path string) error {
	if format == "" {
		format = "json"
	}

	entries := make([]manifestEntry, 0, len(result.Results))
	for _, res := range result.Results {
		entry := manifestEntry{
			SongID:  res.SongID,
			Title:   res.Title,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		entries = append(entries, entry)
	}

	manifest := struct {
		GeneratedAt       time.Time       `json:"generated_at"`
		Format            string          `json:"format"`
		TotalSongs        int             `json:"total_songs"`
		SuccessfulExports int             `json:"successful_exports"`
		FailedExports     int             `json:"failed_exports"`
		OutputDirectory   string          `json:"output_directory"`
		Results           []manifestEntry `json:"results"`
	}{
		GeneratedAt:       time.Now(),
		Format:            format,
		TotalSongs:        result.TotalSongs,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		OutputDirectory:   result.OutputDirectory,
		Results:           entries,
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
