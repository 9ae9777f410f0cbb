// Airplay admin backend [Catalog] implementation
//
// Communicates with the Flask admin backend serving the station airplay
// database. All operations are synchronous JSON-over-HTTP calls.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

const defaultCatalogBaseURL string = "http://localhost:5000"

// CatalogService implements the Catalog interface against the admin backend.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
}

var _ Catalog = (*CatalogService)(nil)

// NewCatalogService creates a new catalog client.
func NewCatalogService(baseURL string, client *http.Client) *CatalogService {
	if baseURL == "" {
		baseURL = defaultCatalogBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CatalogService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (c *CatalogService) doRequest(ctx context.Context, endpoint string, result any) error {
	apiURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// SearchArtists retrieves artist suggestions for the query.
//
// Calls GET /api/search/artists?q= on the backend. The query is sent as
// typed, URL-escaped; the backend decides matching and ordering.
func (c *CatalogService) SearchArtists(ctx context.Context, query string) ([]models.SearchResult, error) {
	return c.search(ctx, "artists", query)
}

// SearchSongs retrieves song suggestions for the query.
//
// Calls GET /api/search/songs?q= on the backend.
func (c *CatalogService) SearchSongs(ctx context.Context, query string) ([]models.SearchResult, error) {
	return c.search(ctx, "songs", query)
}

func (c *CatalogService) search(ctx context.Context, scope, query string) ([]models.SearchResult, error) {
	endpoint := fmt.Sprintf("/api/search/%s?q=%s", scope, url.QueryEscape(query))

	var results []models.SearchResult
	if err := c.doRequest(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// SongMeta retrieves title, cover art and artist references for a song.
//
// Calls GET /api/song_meta?song_id= on the backend.
func (c *CatalogService) SongMeta(ctx context.Context, songID string) (*models.SongMeta, error) {
	if songID == "" {
		return nil, fmt.Errorf("%w: song id is required", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/api/song_meta?song_id=%s", url.QueryEscape(songID))

	var meta models.SongMeta
	if err := c.doRequest(ctx, endpoint, &meta); err != nil {
		return nil, err
	}
	if meta.SongID == "" {
		meta.SongID = songID
	}

	return &meta, nil
}

// PlaySeries retrieves the weekly play-count series for a song.
//
// Calls GET /api/plays_json?song_id=&station_id= on the backend. The
// station_id parameter is omitted for the national aggregate.
func (c *CatalogService) PlaySeries(ctx context.Context, songID, stationID string) (*models.PlaySeries, error) {
	if songID == "" {
		return nil, fmt.Errorf("%w: song id is required", shared.ErrInvalidArgument)
	}

	params := url.Values{}
	params.Set("song_id", songID)
	if stationID != "" {
		params.Set("station_id", stationID)
	}
	endpoint := "/api/plays_json?" + params.Encode()

	var series models.PlaySeries
	if err := c.doRequest(ctx, endpoint, &series); err != nil {
		return nil, err
	}
	if len(series.Labels) != len(series.Values) {
		return nil, fmt.Errorf("%w: label/value length mismatch (%d vs %d)", shared.ErrAPIRequest, len(series.Labels), len(series.Values))
	}

	return &series, nil
}

// Stations retrieves the station directory.
//
// Calls GET /api/stations on the backend.
func (c *CatalogService) Stations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := c.doRequest(ctx, "/api/stations", &stations); err != nil {
		return nil, err
	}

	return stations, nil
}
