package todo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// fakePersister records every save so tests can inspect the write history.
type fakePersister struct {
	mu      sync.Mutex
	loaded  []model.Item
	loadErr error
	saveErr error
	saves   [][]model.Item
}

func (f *fakePersister) Load(context.Context) ([]model.Item, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(_ context.Context, items []model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, items)
	return f.saveErr
}

func (f *fakePersister) last() []model.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

func (f *fakePersister) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

var errDisk = errors.New("disk full")

// fixedClock returns the same instant on every call, so ids collide unless
// the store bumps them.
func fixedClock() func() time.Time {
	t := time.Date(2021, 12, 7, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func texts(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}
