package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/tasks"
	"github.com/desertthunder/spintrack/internal/typeahead"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ReportView
	DetailView
)

// Search scopes, matching the backend's search endpoints.
const (
	ScopeArtists = "artists"
	ScopeSongs   = "songs"
)

// SelectionRecorder persists committed typeahead resolutions. A nil recorder
// disables selection history without disabling the UI.
type SelectionRecorder interface {
	Record(scope, label, resolvedID string) (*models.Selection, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	scope          string
	input          textinput.Model
	suggestionList list.Model
	stationList    list.Model
	artists        *typeahead.Binding
	songs          *typeahead.Binding
	engine         *tasks.SeriesEngine
	selections     SelectionRecorder
	progressChan   chan tasks.ProgressUpdate
	progress       tasks.ProgressUpdate
	result         *tasks.ReportResult
	resolved       string
	err            error
	help           help.Model
	keys           keyMap
	width          int
	height         int
}

type suggestionsMsg typeahead.Update

type progressUpdateMsg tasks.ProgressUpdate

type reportCompleteMsg struct {
	result *tasks.ReportResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, artists, songs *typeahead.Binding, engine *tasks.SeriesEngine, selections SelectionRecorder) *Model {
	input := textinput.New()
	input.Placeholder = "Start typing an artist name..."
	input.Focus()

	suggestions := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	suggestions.Title = "Suggestions"
	suggestions.SetShowHelp(false)
	suggestions.SetFilteringEnabled(false)
	suggestions.SetShowStatusBar(false)

	return &Model{
		ctx:            ctx,
		view:           SearchView,
		scope:          ScopeArtists,
		input:          input,
		suggestionList: suggestions,
		artists:        artists,
		songs:          songs,
		engine:         engine,
		selections:     selections,
		help:           help.New(),
		keys:           newKeyMap(),
	}
}

// Init starts the cursor blink and arms a listener per typeahead binding.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForSuggestions(m.artists),
		m.waitForSuggestions(m.songs),
	)
}

// activeBinding returns the typeahead binding for the current scope.
func (m *Model) activeBinding() *typeahead.Binding {
	if m.scope == ScopeSongs {
		return m.songs
	}
	return m.artists
}

func (m *Model) bindingFor(inputID string) *typeahead.Binding {
	if m.songs != nil && m.songs.InputID() == inputID {
		return m.songs
	}
	if m.artists != nil && m.artists.InputID() == inputID {
		return m.artists
	}
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.suggestionList.SetSize(msg.Width-4, msg.Height-10)
		if m.stationList.Width() != 0 {
			m.stationList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ReportView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case suggestionsMsg:
		binding := m.bindingFor(msg.InputID)
		if binding == nil {
			return m, nil
		}
		if binding == m.activeBinding() {
			m.resolved = msg.ResolvedID
			m.setSuggestions(msg.Suggestions)
		}
		return m, m.waitForSuggestions(binding)

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case reportCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.progressChan = nil
		if msg.err != nil {
			m.view = SearchView
			return m, nil
		}
		m.showDetail()
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ReportView:
		return m.renderReport()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.scope):
		m.toggleScope()
		return m, nil

	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.suggestionList, cmd = m.suggestionList.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.enter):
		return m.commitSelection()
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		binding := m.activeBinding()
		binding.SetQuery(m.ctx, value)
		m.resolved = binding.ResolvedID()
		if value == "" {
			m.setSuggestions(nil)
		}
	}
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = SearchView
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.stationList, cmd = m.stationList.Update(msg)
	return m, cmd
}

// commitSelection adopts the highlighted suggestion (if any), resolves the
// query text against the suggestion set, records the outcome, and for a
// resolved song kicks off report assembly.
func (m *Model) commitSelection() (tea.Model, tea.Cmd) {
	binding := m.activeBinding()

	if selected := m.suggestionList.SelectedItem(); selected != nil {
		if item, ok := selected.(suggestionItem); ok {
			m.input.SetValue(item.result.Label)
			m.input.CursorEnd()
			binding.SetQuery(m.ctx, item.result.Label)
		}
	}

	m.resolved = binding.Resolve()

	if m.selections != nil {
		if _, err := m.selections.Record(m.scope, binding.Query(), m.resolved); err != nil {
			m.err = err
		}
	}

	if m.scope == ScopeSongs && m.resolved != "" {
		return m, m.startReport(m.resolved)
	}
	return m, nil
}

func (m *Model) toggleScope() {
	if m.scope == ScopeArtists {
		m.scope = ScopeSongs
		m.input.Placeholder = "Start typing a song title..."
	} else {
		m.scope = ScopeArtists
		m.input.Placeholder = "Start typing an artist name..."
	}

	binding := m.activeBinding()
	m.input.SetValue(binding.Query())
	m.input.CursorEnd()
	m.resolved = binding.ResolvedID()
	m.setSuggestions(binding.Suggestions())
}

func (m *Model) setSuggestions(suggestions []models.SearchResult) {
	items := make([]list.Item, len(suggestions))
	for i, result := range suggestions {
		items[i] = suggestionItem{result: result, scope: m.scope}
	}
	m.suggestionList.SetItems(items)
	if m.width > 0 {
		m.suggestionList.SetSize(m.width-4, m.height-10)
	}
}

func (m *Model) showDetail() {
	report := m.result.Report
	items := make([]list.Item, len(report.Stations))
	for i, series := range report.Stations {
		items[i] = stationItem{series: series}
	}
	m.stationList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.stationList.Title = fmt.Sprintf("Stations playing '%s'", report.Title())
	m.stationList.SetShowHelp(false)
	m.stationList.SetFilteringEnabled(false)
	m.stationList.SetSize(m.width-4, m.height-10)
	m.view = DetailView
}

func (m *Model) startReport(songID string) tea.Cmd {
	m.view = ReportView
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	progressChan := m.progressChan
	go func() {
		result, err := m.engine.Report(m.ctx, progressChan, songID, tasks.ReportOpts{AllStations: true})
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return reportCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return reportCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

// waitForSuggestions blocks on a binding's update channel and republishes the
// snapshot as a bubbletea message.
func (m *Model) waitForSuggestions(binding *typeahead.Binding) tea.Cmd {
	if binding == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-binding.Updates()
		if !ok {
			return nil
		}
		return suggestionsMsg(update)
	}
}

func (m *Model) renderSearch() string {
	binding := m.activeBinding()
	title := styles.title.Render("Airplay Catalog Search")
	scope := styles.help.Render(fmt.Sprintf("scope: %s (tab to switch)", m.scope))

	resolved := fmt.Sprintf("%s: (unresolved)", binding.HiddenID())
	if m.resolved != "" {
		resolved = styles.ok.Render(fmt.Sprintf("%s: %s", binding.HiddenID(), m.resolved))
	}

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.scope, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s%s\n\n%s\n\n%s",
		title, scope, m.input.View(), resolved, errLine, m.suggestionList.View(), helpView)
}

func (m *Model) renderReport() string {
	title := styles.title.Render("Assembling Report")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchMeta:
		phase = "Fetching song metadata..."
	case tasks.FetchNational:
		phase = "Fetching national play series..."
	case tasks.FetchStations:
		phase = "Fetching station directory..."
	case tasks.FetchStationSeries:
		phase = fmt.Sprintf("Fetching station series (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderDetail() string {
	report := m.result.Report
	title := styles.title.Render(fmt.Sprintf("%s · %s", report.Title(), report.ArtistLine()))

	deltas := report.National.Deltas()
	trend := ""
	if n := report.National.Len(); n > 1 {
		trend = fmt.Sprintf(" (%+d last week)", deltas[n-1])
	}
	summary := fmt.Sprintf("National: %d plays over %d weeks%s", report.National.Total(), report.National.Len(), trend)

	var skipped string
	if n := len(m.result.FailedStations); n > 0 {
		skipped = "\n" + styles.warn.Render(fmt.Sprintf("%d stations skipped due to fetch errors", n))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n%s", title, summary, skipped, m.stationList.View(), helpView)
}
