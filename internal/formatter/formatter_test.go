package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spintrack/internal/models"
)

func sampleReport() *models.SeriesReport {
	return &models.SeriesReport{
		Meta: &models.SongMeta{
			SongID:   "s1",
			Title:    "Believe",
			CoverURL: "http://img/believe.jpg",
			Artists:  []models.ArtistRef{{ID: "7", Name: "Cher"}, {ID: "8", Name: "Chic"}},
		},
		National: models.PlaySeries{
			Labels: []string{"2026-08-10", "2026-08-17"},
			Values: []int{12, 19},
		},
		Stations: []models.StationSeries{
			{
				Station: models.Station{ID: "st1", Name: "KEXP"},
				Series:  models.PlaySeries{Labels: []string{"2026-08-10", "2026-08-17"}, Values: []int{3, 5}},
			},
		},
		GeneratedAt: time.Now(),
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleReport())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d records", len(records))
	}
	if records[0][0] != "Week" || records[0][3] != "Delta" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "All stations" || records[1][2] != "12" || records[1][3] != "0" {
		t.Errorf("unexpected national row: %v", records[1])
	}
	if records[2][3] != "7" {
		t.Errorf("expected delta 7 for second national week, got %v", records[2])
	}
	if records[3][1] != "KEXP" {
		t.Errorf("expected station rows after national rows, got %v", records[3])
	}
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("includes title, artists and tables", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleReport(), "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		md := string(data)
		for _, want := range []string{"# Believe", "**Artists**: Cher, Chic", "## All stations", "## KEXP", "| 2026-08-17 | 19 | +7 |"} {
			if !strings.Contains(md, want) {
				t.Errorf("expected markdown to contain %q", want)
			}
		}
	})

	t.Run("includes cover image when provided", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleReport(), "cover.jpg")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "![Cover](cover.jpg)") {
			t.Error("expected cover image reference")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleReport())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}

	text := string(data)
	for _, want := range []string{"Song: Believe", "Total plays: 31", "All stations", "KEXP", "10/08/2026 - 16/08/2026"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q", want)
		}
	}
}

func TestExportToTextRejectsBadWeeks(t *testing.T) {
	report := sampleReport()
	report.National.Labels[0] = "not-a-week"

	if _, err := ExportToText(report); err == nil {
		t.Error("expected error for malformed week label")
	}
}

func TestWriteCSVExport(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "s1")

	result, err := WriteCSVExport(sampleReport(), base)
	if err != nil {
		t.Fatalf("WriteCSVExport failed: %v", err)
	}

	if result.SeriesFile != base+"_series.csv" {
		t.Errorf("unexpected series file path: %s", result.SeriesFile)
	}
	for _, path := range []string{result.SeriesFile, result.MetadataFile} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file %s to exist: %v", path, err)
		}
	}

	metadata, err := os.ReadFile(result.MetadataFile)
	if err != nil {
		t.Fatalf("failed to read metadata: %v", err)
	}
	if !strings.Contains(string(metadata), `"Believe"`) {
		t.Errorf("expected metadata JSON to include the title, got %s", metadata)
	}
}

func TestWriteMarkdownExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "s1")

	result, err := WriteMarkdownExport(sampleReport(), dir, "")
	if err != nil {
		t.Fatalf("WriteMarkdownExport failed: %v", err)
	}

	if len(result.Files) != 1 || !strings.HasSuffix(result.Files[0], "README.md") {
		t.Errorf("expected a README.md, got %v", result.Files)
	}
	if result.CoverImage != "" {
		t.Errorf("expected no cover image without URL, got %s", result.CoverImage)
	}
}

func TestWriteTextExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s1.txt")

	written, err := WriteTextExport(sampleReport(), path)
	if err != nil {
		t.Fatalf("WriteTextExport failed: %v", err)
	}
	if written != path {
		t.Errorf("expected %s, got %s", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}
