package models

import "time"

// StationSeries pairs a station with its weekly play series for one song.
type StationSeries struct {
	Station Station    `json:"station"`
	Series  PlaySeries `json:"series"`
}

// SeriesReport bundles everything the report commands render for one song:
// its metadata, the national weekly series, and any per-station breakdowns.
type SeriesReport struct {
	Meta        *SongMeta       `json:"meta"`
	National    PlaySeries      `json:"national"`
	Stations    []StationSeries `json:"stations,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ArtistLine returns the report's artist names joined for display.
func (r *SeriesReport) ArtistLine() string {
	if r.Meta == nil || len(r.Meta.Artists) == 0 {
		return ""
	}
	line := r.Meta.Artists[0].Name
	for _, artist := range r.Meta.Artists[1:] {
		line += ", " + artist.Name
	}
	return line
}

// Title returns the report's song title, or "" when metadata is missing.
func (r *SeriesReport) Title() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta.Title
}
