package todo

import (
	"context"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"go.uber.org/zap"
)

// writer saves snapshots on its own goroutine. Only the newest pending
// snapshot is kept; failed writes are logged and dropped.
type writer struct {
	p   Persister
	log *zap.Logger

	mu      sync.Mutex
	pending []model.Item
	dirty   bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newWriter(p Persister, log *zap.Logger) *writer {
	w := &writer{
		p:    p,
		log:  log,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(items []model.Item) {
	w.mu.Lock()
	w.pending = items
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *writer) flush() {
	w.mu.Lock()
	items, dirty := w.pending, w.dirty
	w.pending, w.dirty = nil, false
	w.mu.Unlock()

	if !dirty {
		return
	}
	if err := w.p.Save(context.Background(), items); err != nil {
		w.log.Error("saving todos", zap.Error(err), zap.Int("count", len(items)))
		return
	}
	w.log.Debug("todos saved", zap.Int("count", len(items)))
}

// close flushes whatever is pending and waits for the goroutine to exit.
func (w *writer) close() {
	w.once.Do(func() { close(w.stop) })
	<-w.done
}
