package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

func TestCatalogService(t *testing.T) {
	ctx := context.Background()

	t.Run("NewCatalogService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			if svc := NewCatalogService("", nil); svc == nil {
				t.Fatal("expected service to be created")
			} else if svc.baseURL != defaultCatalogBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultCatalogBaseURL, svc.baseURL)
			}
		})

		t.Run("creates service with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000"
			if svc := NewCatalogService(customURL, nil); svc.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, svc.baseURL)
			}
		})
	})

	t.Run("SearchArtists", func(t *testing.T) {
		t.Run("escapes the query and preserves backend order", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/search/artists" {
					t.Errorf("expected path /api/search/artists, got %s", r.URL.Path)
				}
				if r.URL.RawQuery != "q=AC%2FDC+%26+friends" {
					t.Errorf("unexpected raw query %s", r.URL.RawQuery)
				}
				if got := r.URL.Query().Get("q"); got != "AC/DC & friends" {
					t.Errorf("expected decoded query, got %s", got)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]models.SearchResult{
					{ID: "9", Label: "AC/DC"},
					{ID: "3", Label: "AC/DC & friends"},
				})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			results, err := svc.SearchArtists(ctx, "AC/DC & friends")
			if err != nil {
				t.Fatalf("SearchArtists failed: %v", err)
			}
			if len(results) != 2 || results[0].ID != "9" || results[1].ID != "3" {
				t.Errorf("unexpected results: %v", results)
			}
		})

		t.Run("non-success status returns an API error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			if _, err := svc.SearchArtists(ctx, "cher"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("malformed body returns an API error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			if _, err := svc.SearchArtists(ctx, "cher"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("SearchSongs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/search/songs" {
				t.Errorf("expected path /api/search/songs, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]models.SearchResult{{ID: "s1", Label: "Believe"}})
		}))
		defer server.Close()

		svc := NewCatalogService(server.URL, nil)
		results, err := svc.SearchSongs(ctx, "Believe")
		if err != nil {
			t.Fatalf("SearchSongs failed: %v", err)
		}
		if len(results) != 1 || results[0].Label != "Believe" {
			t.Errorf("unexpected results: %v", results)
		}
	})

	t.Run("SongMeta", func(t *testing.T) {
		t.Run("decodes metadata", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/song_meta" {
					t.Errorf("expected path /api/song_meta, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("song_id"); got != "s1" {
					t.Errorf("expected song_id s1, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.SongMeta{
					SongID:   "s1",
					Title:    "Believe",
					CoverURL: "http://img/believe.jpg",
					Artists:  []models.ArtistRef{{ID: "7", Name: "Cher"}},
				})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			meta, err := svc.SongMeta(ctx, "s1")
			if err != nil {
				t.Fatalf("SongMeta failed: %v", err)
			}
			if meta.Title != "Believe" || len(meta.Artists) != 1 || meta.Artists[0].Name != "Cher" {
				t.Errorf("unexpected metadata: %+v", meta)
			}
		})

		t.Run("requires a song id", func(t *testing.T) {
			svc := NewCatalogService("http://localhost:1", nil)
			if _, err := svc.SongMeta(ctx, ""); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("surfaces the backend error detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": "song not found"})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			_, err := svc.SongMeta(ctx, "missing")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("PlaySeries", func(t *testing.T) {
		t.Run("national series omits station_id", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/plays_json" {
					t.Errorf("expected path /api/plays_json, got %s", r.URL.Path)
				}
				if r.URL.Query().Has("station_id") {
					t.Error("expected no station_id parameter for national series")
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.PlaySeries{
					Labels: []string{"2026-08-10", "2026-08-17"},
					Values: []int{12, 19},
				})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			series, err := svc.PlaySeries(ctx, "s1", "")
			if err != nil {
				t.Fatalf("PlaySeries failed: %v", err)
			}
			if series.Len() != 2 || series.Total() != 31 {
				t.Errorf("unexpected series: %+v", series)
			}
		})

		t.Run("station series passes station_id", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("station_id"); got != "st9" {
					t.Errorf("expected station_id st9, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.PlaySeries{Labels: []string{"2026-08-10"}, Values: []int{4}})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			if _, err := svc.PlaySeries(ctx, "s1", "st9"); err != nil {
				t.Fatalf("PlaySeries failed: %v", err)
			}
		})

		t.Run("rejects misaligned labels and values", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.PlaySeries{Labels: []string{"2026-08-10"}, Values: []int{1, 2}})
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil)
			if _, err := svc.PlaySeries(ctx, "s1", ""); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest for misaligned series, got %v", err)
			}
		})
	})

	t.Run("Stations", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/stations" {
				t.Errorf("expected path /api/stations, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]models.Station{
				{ID: "st1", Name: "KEXP"},
				{ID: "st2", Name: "WFMU"},
			})
		}))
		defer server.Close()

		svc := NewCatalogService(server.URL, nil)
		stations, err := svc.Stations(ctx)
		if err != nil {
			t.Fatalf("Stations failed: %v", err)
		}
		if len(stations) != 2 || stations[0].Name != "KEXP" {
			t.Errorf("unexpected stations: %v", stations)
		}
	})
}
