// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for exploring airplay data:
//  1. [SearchView] : Type-ahead search over artists and songs with live suggestions
//  2. [ReportView] : Monitor real-time progress while a report is assembled
//  3. [DetailView] : Display the weekly play series and per-station breakdown
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Keystrokes feed the typeahead binding, whose debounced suggestion updates
// flow back in through a channel-wait command; report progress updates flow
// through a channel from the SeriesEngine the same way.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
