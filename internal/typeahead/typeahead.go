package typeahead

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spintrack/internal/models"
	"github.com/desertthunder/spintrack/internal/shared"
)

// DefaultDebounce is the quiet period a binding waits after the last
// keystroke before issuing a search request.
const DefaultDebounce = 150 * time.Millisecond

// defaultUpdateBuffer is the capacity of a binding's update channel.
const defaultUpdateBuffer = 8

// Searcher answers a query with an ordered list of suggestions.
//
// Implementations are expected to treat any failure (transport, status,
// decoding) as an error return; the binding swallows errors and keeps its
// current suggestion set.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) ([]models.SearchResult, error)

// Search implements Searcher.
func (f SearcherFunc) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return f(ctx, query)
}

// Update is a snapshot of a binding's state, emitted on the binding's update
// channel whenever the suggestion set or resolution changes.
type Update struct {
	InputID     string
	Query       string
	Suggestions []models.SearchResult
	ResolvedID  string
}

// BindingOpts configures a binding created through [Registry.Attach].
type BindingOpts struct {
	InputID  string
	HiddenID string
	Searcher Searcher
	Debounce time.Duration // zero means DefaultDebounce
	Logger   *log.Logger   // optional
}

// Binding couples one query field with its hidden resolved-identifier field
// and suggestion list. All methods are safe for concurrent use.
type Binding struct {
	inputID  string
	hiddenID string
	listID   string
	searcher Searcher
	debounce time.Duration
	logger   *log.Logger

	mu          sync.Mutex
	query       string
	suggestions []models.SearchResult
	resolved    string
	timer       *time.Timer
	issued      uint64
	closed      bool
	updates     chan Update
}

func newBinding(opts BindingOpts) *Binding {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Binding{
		inputID:  opts.InputID,
		hiddenID: opts.HiddenID,
		listID:   opts.InputID + "_list",
		searcher: opts.Searcher,
		debounce: debounce,
		logger:   logger,
		updates:  make(chan Update, defaultUpdateBuffer),
	}
}

// InputID returns the identifier of the query field.
func (b *Binding) InputID() string { return b.inputID }

// HiddenID returns the identifier of the hidden resolved-identifier field.
func (b *Binding) HiddenID() string { return b.hiddenID }

// ListID returns the identifier of the suggestion list, derived from the
// input identifier with a "_list" suffix.
func (b *Binding) ListID() string { return b.listID }

// Updates returns the channel on which state snapshots are emitted. Sends are
// non-blocking; a slow consumer misses intermediate snapshots, never the lock.
func (b *Binding) Updates() <-chan Update { return b.updates }

// Query returns the current query text.
func (b *Binding) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Suggestions returns a copy of the current suggestion set in backend order.
func (b *Binding) Suggestions() []models.SearchResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.SearchResult, len(b.suggestions))
	copy(out, b.suggestions)
	return out
}

// ResolvedID returns the hidden field's current value: the identifier of the
// suggestion whose label exactly matches the query text, or "".
func (b *Binding) ResolvedID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolved
}

// SetQuery records a keystroke. Empty text clears the suggestion set
// synchronously without a request; non-empty text (re)starts the debounce
// timer, so only the final text of a typing burst reaches the backend.
func (b *Binding) SetQuery(ctx context.Context, text string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.query = text
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if text == "" {
		// Clearing is a newer action than any in-flight request; bump the
		// sequence so a late response cannot repopulate the list.
		b.issued++
		b.suggestions = nil
		b.resolveLocked()
		update := b.snapshotLocked()
		b.mu.Unlock()
		b.emit(update)
		return
	}
	b.resolveLocked()
	b.timer = time.AfterFunc(b.debounce, func() { b.fire(ctx, text) })
	update := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(update)
}

// Resolve recomputes and returns the hidden field value for the current text.
// Matching is exact and case-sensitive against whole suggestion labels; ties
// on duplicate labels go to the earliest suggestion. Calling Resolve again
// without an intervening change returns the same value.
func (b *Binding) Resolve() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resolveLocked()
	return b.resolved
}

// Close stops the pending timer and detaches the binding from future
// keystrokes and responses. The update channel is left open; in-flight
// responses are discarded rather than raced against a close.
func (b *Binding) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// fire runs when the debounce timer expires: it issues the search request
// for the text that started the timer and applies the response only if it is
// still the newest request for the current text.
func (b *Binding) fire(ctx context.Context, query string) {
	b.mu.Lock()
	if b.closed || b.query != query {
		b.mu.Unlock()
		return
	}
	b.issued++
	seq := b.issued
	b.mu.Unlock()

	results, err := b.searcher.Search(ctx, query)
	if err != nil {
		// Suggestion failures are silent: the current set stays as it is.
		b.logger.Debug("suggestion request failed", "input", b.inputID, "query", query, "error", err)
		return
	}

	b.mu.Lock()
	if b.closed || seq != b.issued || b.query != query {
		b.mu.Unlock()
		return
	}
	b.suggestions = results
	b.resolveLocked()
	update := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(update)
}

func (b *Binding) resolveLocked() {
	b.resolved = ResolveLabel(b.query, b.suggestions)
}

// ResolveLabel maps text to the identifier of the first suggestion whose
// label matches it exactly, case-sensitively and in full. Returns "" when
// nothing matches.
func ResolveLabel(text string, suggestions []models.SearchResult) string {
	for _, s := range suggestions {
		if s.Label == text {
			return s.ID
		}
	}
	return ""
}

func (b *Binding) snapshotLocked() Update {
	suggestions := make([]models.SearchResult, len(b.suggestions))
	copy(suggestions, b.suggestions)
	return Update{
		InputID:     b.inputID,
		Query:       b.query,
		Suggestions: suggestions,
		ResolvedID:  b.resolved,
	}
}

func (b *Binding) emit(update Update) {
	select {
	case b.updates <- update:
	default:
	}
}

// Registry holds the typeahead bindings of one running program, keyed by
// input identifier. Bindings are attached explicitly; there is no scanning
// or convention-based discovery.
type Registry struct {
	mu       sync.Mutex
	bindings map[string]*Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*Binding)}
}

// Attach creates a binding for the given field pair and registers it under
// its input identifier. The input and hidden identifiers must be non-empty
// and distinct, a searcher is required, and an input identifier can only be
// attached once.
func (r *Registry) Attach(opts BindingOpts) (*Binding, error) {
	if opts.InputID == "" || opts.HiddenID == "" {
		return nil, fmt.Errorf("%w: input and hidden identifiers are required", shared.ErrInvalidBinding)
	}
	if opts.InputID == opts.HiddenID {
		return nil, fmt.Errorf("%w: input and hidden identifiers must differ", shared.ErrInvalidBinding)
	}
	if opts.Searcher == nil {
		return nil, fmt.Errorf("%w: searcher is required", shared.ErrInvalidBinding)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[opts.InputID]; ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateBinding, opts.InputID)
	}
	binding := newBinding(opts)
	r.bindings[opts.InputID] = binding
	return binding, nil
}

// Get returns the binding attached under the given input identifier.
func (r *Registry) Get(inputID string) (*Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	binding, ok := r.bindings[inputID]
	return binding, ok
}

// Detach closes and removes the binding for the given input identifier.
func (r *Registry) Detach(inputID string) {
	r.mu.Lock()
	binding, ok := r.bindings[inputID]
	delete(r.bindings, inputID)
	r.mu.Unlock()
	if ok {
		binding.Close()
	}
}

// Close closes every binding in the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	bindings := make([]*Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		bindings = append(bindings, b)
	}
	r.bindings = make(map[string]*Binding)
	r.mu.Unlock()
	for _, b := range bindings {
		b.Close()
	}
}
