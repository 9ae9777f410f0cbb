// package services defines interface Catalog for interacting with the airplay admin backend
package services

import (
	"context"

	"github.com/desertthunder/spintrack/internal/models"
)

// Catalog defines the typed operations of the airplay admin backend.
type Catalog interface {
	// SearchArtists returns artist suggestions for the query, in backend order.
	SearchArtists(ctx context.Context, query string) ([]models.SearchResult, error)

	// SearchSongs returns song suggestions for the query, in backend order.
	SearchSongs(ctx context.Context, query string) ([]models.SearchResult, error)

	// SongMeta retrieves title, cover and artist references for a song.
	SongMeta(ctx context.Context, songID string) (*models.SongMeta, error)

	// PlaySeries retrieves the weekly play-count series for a song. An empty
	// stationID asks for the national aggregate.
	PlaySeries(ctx context.Context, songID, stationID string) (*models.PlaySeries, error)

	// Stations retrieves the station directory.
	Stations(ctx context.Context) ([]models.Station, error)
}
