package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	ctx := context.Background()

	t.Run("Get returns raw response with JSON detection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/stations" {
				t.Errorf("expected path /api/stations, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"stations":[{"id":"st1","name":"KEXP"}]}`))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Get(ctx, "/api/stations")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !resp.OK() {
			t.Errorf("expected success status, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON detection")
		}
	})

	t.Run("Get keeps non-JSON bodies raw", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Get(ctx, "/health")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if resp.IsJSON {
			t.Error("expected non-JSON body")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("unexpected body: %s", resp.Body)
		}
	})

	t.Run("Post sends JSON content type", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %s", ct)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Post(ctx, "/api/notes", []byte(`{"text":"hi"}`))
		if err != nil {
			t.Fatalf("Post failed: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("Extract", func(t *testing.T) {
		resp := &APIResponse{
			StatusCode: 200,
			Body:       []byte(`{"stations":[{"id":"st1","name":"KEXP"}],"count":1}`),
			IsJSON:     true,
		}

		t.Run("returns nested values by path", func(t *testing.T) {
			got, err := resp.Extract("stations.0.name")
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != "KEXP" {
				t.Errorf("expected KEXP, got %s", got)
			}
		})

		t.Run("fails on missing path", func(t *testing.T) {
			if _, err := resp.Extract("stations.5.name"); err == nil {
				t.Error("expected error for missing path")
			}
		})

		t.Run("fails on non-JSON body", func(t *testing.T) {
			raw := &APIResponse{Body: []byte("nope")}
			if _, err := raw.Extract("x"); err == nil {
				t.Error("expected error for non-JSON body")
			}
		})
	})
}
