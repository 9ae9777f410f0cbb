package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the airplay client.
// Implementations include CachedSuggestion and Selection.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SearchResult represents one entry from a backend search endpoint.
//
// ID is the stable backend identifier; Label is the display text. IDs are
// unique within one result set, labels are not.
type SearchResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ArtistRef is an artist reference embedded in song metadata.
type ArtistRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// SongMeta represents song metadata from the backend.
type SongMeta struct {
	SongID   string      `json:"song_id"`
	Title    string      `json:"title"`
	CoverURL string      `json:"cover_url"`
	Artists  []ArtistRef `json:"artists"`
}

// Station represents a radio station reference.
type Station struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// PlaySeries is a weekly play-count time series for one song, optionally
// restricted to a single station. Labels are week starts in YYYY-MM-DD form,
// weeks ascending; Values holds the summed spins per week. The two slices are
// index-aligned.
type PlaySeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Len returns the number of data points in the series.
func (s PlaySeries) Len() int {
	if len(s.Labels) < len(s.Values) {
		return len(s.Labels)
	}
	return len(s.Values)
}

// Total returns the sum of all values in the series.
func (s PlaySeries) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Deltas returns the week-over-week change per data point. The first point
// has no predecessor and reports zero.
func (s PlaySeries) Deltas() []int {
	n := s.Len()
	deltas := make([]int, n)
	for i := 1; i < n; i++ {
		deltas[i] = s.Values[i] - s.Values[i-1]
	}
	return deltas
}
