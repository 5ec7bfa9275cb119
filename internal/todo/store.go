// Package todo holds the authoritative to-do list and the operations that
// mutate it. A Store is driven from one goroutine (the CLI command or the TUI
// event loop); only persistence runs in the background.
package todo

import (
	"context"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"go.uber.org/zap"
)

// Persister loads and saves the full item list.
type Persister interface {
	Load(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
}

// Snapshot is a copy of the store state handed to observers.
type Snapshot struct {
	Items   []model.Item
	Visible []model.Item
	Filter  model.Filter
	Draft   string
	Counts  model.Counts
}

// Store owns the item list, the active filter and the draft text.
// It is not safe for concurrent use.
type Store struct {
	items  []model.Item
	filter model.Filter
	draft  string
	lastID int64

	now func() time.Time
	log *zap.Logger

	observers map[int]func(Snapshot)
	nextObs   int

	w *writer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFilter sets the initial filter.
func WithFilter(f model.Filter) Option {
	return func(s *Store) { s.filter = f }
}

// New returns an empty in-memory store with no persistence.
func New(opts ...Option) *Store {
	s := &Store{
		items:     []model.Item{},
		filter:    model.FilterAll,
		now:       time.Now,
		log:       zap.NewNop(),
		observers: map[int]func(Snapshot){},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open hydrates a store from p and starts the background writer.
// A failed or empty load leaves the list empty; it is logged, never returned.
// Callers must Close the store to flush the last write.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := New(opts...)
	items, err := p.Load(ctx)
	if err != nil {
		s.log.Error("loading todos, starting empty", zap.Error(err))
		items = nil
	}
	s.items = s.dedupe(items)
	for _, it := range s.items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	s.log.Debug("todos loaded", zap.Int("count", len(s.items)))
	s.w = newWriter(p, s.log)
	return s
}

// Close flushes any pending write and stops the writer. It is a no-op for
// stores created with New.
func (s *Store) Close() error {
	if s.w == nil {
		return nil
	}
	s.w.close()
	return nil
}

func (s *Store) dedupe(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			s.log.Warn("dropping duplicate todo id", zap.Int64("id", it.ID))
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

// ── Mutations ────────────────────────────────────────────────────────────────

// Add prepends a new item and clears the draft. The text is stored as given;
// blank or whitespace-only text is ignored and leaves the draft untouched.
func (s *Store) Add(text string) (model.Item, bool) {
	if strings.TrimSpace(text) == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: s.newID(), Text: text}

	next := make([]model.Item, 0, len(s.items)+1)
	next = append(next, it)
	next = append(next, s.items...)
	s.draft = ""
	s.commit(next)
	return it, true
}

// Edit replaces the text of the item with the given id. Unknown ids are ignored.
func (s *Store) Edit(id int64, text string) bool {
	return s.update(id, func(it *model.Item) { it.Text = text })
}

// ToggleChecked flips Checked on the item with the given id.
func (s *Store) ToggleChecked(id int64) bool {
	return s.update(id, func(it *model.Item) { it.Checked = !it.Checked })
}

// ToggleRemoved moves the item into the trash, or restores it.
func (s *Store) ToggleRemoved(id int64) bool {
	return s.update(id, func(it *model.Item) { it.Removed = !it.Removed })
}

// EmptyRemoved permanently drops every removed item and returns how many went.
func (s *Store) EmptyRemoved() int {
	next := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if !it.Removed {
			next = append(next, it)
		}
	}
	dropped := len(s.items) - len(next)
	if dropped == 0 {
		return 0
	}
	s.commit(next)
	return dropped
}

// update copies the list, applies fn to the matching item and commits.
// Items other than the match are carried over unchanged.
func (s *Store) update(id int64, fn func(*model.Item)) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := make([]model.Item, len(s.items))
	copy(next, s.items)
	fn(&next[idx])
	s.commit(next)
	return true
}

func (s *Store) commit(next []model.Item) {
	s.items = next
	s.notify()
	if s.w != nil {
		s.w.enqueue(s.Items())
	}
}

func (s *Store) newID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ── Filter and draft ─────────────────────────────────────────────────────────

// SetFilter changes the active view.
func (s *Store) SetFilter(f model.Filter) {
	s.filter = f
	s.notify()
}

// Filter returns the active view selector.
func (s *Store) Filter() model.Filter { return s.filter }

// SetDraft replaces the in-progress input text.
func (s *Store) SetDraft(text string) {
	s.draft = text
	s.notify()
}

// Draft returns the in-progress input text.
func (s *Store) Draft() string { return s.draft }

// SubmitDraft adds the draft as a new item.
func (s *Store) SubmitDraft() (model.Item, bool) {
	return s.Add(s.draft)
}

// CancelDraft discards the in-progress input.
func (s *Store) CancelDraft() {
	if s.draft == "" {
		return
	}
	s.SetDraft("")
}

// ── Reads ────────────────────────────────────────────────────────────────────

// Items returns a copy of the full list, newest first.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// VisibleItems derives the current view from the list and the active filter.
func (s *Store) VisibleItems() []model.Item {
	return s.filter.Apply(s.items)
}

// Item looks up a single item by id.
func (s *Store) Item(id int64) (model.Item, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx], true
}

// Counts tallies the full list.
func (s *Store) Counts() model.Counts { return model.Count(s.items) }

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:   s.Items(),
		Visible: s.VisibleItems(),
		Filter:  s.filter,
		Draft:   s.draft,
		Counts:  s.Counts(),
	}
}

func (s *Store) indexOf(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// ── Observers ────────────────────────────────────────────────────────────────

// Subscribe registers fn to run synchronously after every state change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}
