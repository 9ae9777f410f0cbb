// package formatter provides functions to export play-series reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

const nationalSeriesName = "All stations"

// ExportToCSV converts a SeriesReport to long-format CSV with columns: Week, Station, Plays, Delta.
//
// The national series is listed first under "All stations", followed by each
// station series in report order.
func ExportToCSV(report *models.SeriesReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Week", "Station", "Plays", "Delta"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	writeSeries := func(name string, series models.PlaySeries) error {
		deltas := series.Deltas()
		for i := 0; i < series.Len(); i++ {
			record := []string{
				series.Labels[i],
				name,
				strconv.Itoa(series.Values[i]),
				strconv.Itoa(deltas[i]),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	}

	if err := writeSeries(nationalSeriesName, report.National); err != nil {
		return nil, err
	}
	for _, station := range report.Stations {
		if err := writeSeries(station.Station.Name, station.Series); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SeriesReport to Markdown format with optional cover image
func ExportToMarkdown(report *models.SeriesReport, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", report.Title()))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if artists := report.ArtistLine(); artists != "" {
		buf.WriteString(fmt.Sprintf("**Artists**: %s\n\n", artists))
	}

	buf.WriteString(fmt.Sprintf("**Weeks**: %d\n", report.National.Len()))
	buf.WriteString(fmt.Sprintf("**Total plays**: %d\n\n", report.National.Total()))

	writeTable := func(title string, series models.PlaySeries) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", title))
		buf.WriteString("| Week | Plays | Delta |\n")
		buf.WriteString("|------|-------|-------|\n")
		deltas := series.Deltas()
		for i := 0; i < series.Len(); i++ {
			buf.WriteString(fmt.Sprintf("| %s | %d | %+d |\n", series.Labels[i], series.Values[i], deltas[i]))
		}
		buf.WriteString("\n")
	}

	writeTable(nationalSeriesName, report.National)
	for _, station := range report.Stations {
		writeTable(station.Station.Name, station.Series)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SeriesReport to plain text format with human-readable week ranges
func ExportToText(report *models.SeriesReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Song: %s\n", report.Title()))
	if artists := report.ArtistLine(); artists != "" {
		buf.WriteString(fmt.Sprintf("Artists: %s\n", artists))
	}
	buf.WriteString(fmt.Sprintf("Total plays: %d\n\n", report.National.Total()))

	writeSeries := func(name string, series models.PlaySeries) error {
		buf.WriteString(name + "\n")
		for i := 0; i < series.Len(); i++ {
			week, err := shared.ParseWeek(series.Labels[i])
			if err != nil {
				return err
			}
			buf.WriteString(fmt.Sprintf("  %s  %4d\n", shared.WeekLabelRange(week), series.Values[i]))
		}
		buf.WriteString("\n")
		return nil
	}

	if err := writeSeries(nationalSeriesName, report.National); err != nil {
		return nil, err
	}
	for _, station := range report.Stations {
		if err := writeSeries(station.Station.Name, station.Series); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of song metadata (without series data)
func ToMetadataJSON(meta *models.SongMeta) ([]byte, error) {
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SeriesFile   string
	MetadataFile string
}

// WriteCSVExport exports a report to CSV format with accompanying metadata JSON file.
//
// Creates {base}_series.csv and {base}_metadata.json.
func WriteCSVExport(report *models.SeriesReport, baseFilepath string) (*CSVExportResult, error) {
	csvData, err := ExportToCSV(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	seriesFile := baseFilepath + "_series.csv"
	if err := os.WriteFile(seriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(report.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		SeriesFile:   seriesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a report to Markdown format in a dedicated directory.
//
// The imageURL parameter is optional - if provided, attempts to download the
// song's cover image. Creates {dir}/README.md and optionally {dir}/cover.jpg.
func WriteMarkdownExport(report *models.SeriesReport, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(report, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a report to a plain text file and returns the path written.
func WriteTextExport(report *models.SeriesReport, filepath string) (string, error) {
	textData, err := ExportToText(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
