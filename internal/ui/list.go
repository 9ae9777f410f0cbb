package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spintrack/internal/models"
)

var (
	_ list.Item = suggestionItem{}
	_ list.Item = stationItem{}
)

// suggestionItem wraps [models.SearchResult] to implement [list.Item].
type suggestionItem struct {
	result models.SearchResult
	scope  string
}

func (i suggestionItem) FilterValue() string { return i.result.Label }
func (i suggestionItem) Title() string       { return i.result.Label }
func (i suggestionItem) Description() string {
	return fmt.Sprintf("%s · %s", i.scope, i.result.ID)
}

// stationItem wraps [models.StationSeries] to implement [list.Item].
type stationItem struct {
	series models.StationSeries
}

func (i stationItem) FilterValue() string { return i.series.Station.Name }
func (i stationItem) Title() string       { return i.series.Station.Name }
func (i stationItem) Description() string {
	return fmt.Sprintf("%d plays over %d weeks", i.series.Series.Total(), i.series.Series.Len())
}
