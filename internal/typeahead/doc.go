// Package typeahead implements a debounced remote-search suggestion component.
//
// A [Binding] ties a query field to a hidden resolved-identifier field and a
// suggestion list, the same triple an autocomplete form control owns. Bindings
// are created through an explicit [Registry] rather than discovered by
// scanning, so each control is constructed once and handed back to the caller.
//
// # Query pipeline
//
// Every keystroke lands in [Binding.SetQuery]. Non-empty text schedules a
// search after a quiet period (150 ms by default); another keystroke inside
// the window cancels and reschedules, so a burst of typing issues exactly one
// request carrying the final text. Empty text clears the suggestion set
// synchronously and issues no request at all.
//
// # Staleness
//
// Responses are sequence-checked: a result set is applied only when no newer
// request has been issued and the query text is still the one that triggered
// it. A slow response to an old keystroke can never overwrite newer results.
// In-flight requests are not cancelled when superseded, only discarded.
//
// # Resolution
//
// [Binding.Resolve] maps the current text to a backend identifier by exact,
// case-sensitive whole-string match against the current suggestion labels,
// writing the match's identifier (or "") to the hidden field. Resolution is
// idempotent and also runs automatically whenever the text or the suggestion
// set changes, so the hidden field never disagrees with the visible text.
//
// # Failure semantics
//
// Transport failures, non-success statuses, and undecodable bodies all
// collapse into "no new suggestions this round": the current set is left
// untouched and nothing propagates to the caller. Suggestions are an
// enhancement; the surrounding form keeps working without them.
package typeahead
