package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/pkg/log"
)

const DefaultSettleDelay = 500 * time.Millisecond

// Watcher imports manuals dropped into an inbox directory. A file is imported
// once no write event has arrived for SettleDelay.
type Watcher struct {
	importer    *Importer
	SettleDelay time.Duration

	mu       sync.Mutex
	pending  map[string]*time.Timer
	stopped  bool
	inflight sync.WaitGroup
}

func NewWatcher(importer *Importer) *Watcher {
	return &Watcher{
		importer:    importer,
		SettleDelay: DefaultSettleDelay,
		pending:     make(map[string]*time.Timer),
	}
}

// Watch blocks until ctx is cancelled or the underlying watcher fails. It does
// not return while an import is still running.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	logger := log.FromCtx(ctx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create inbox: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.mu.Lock()
	w.stopped = false
	w.mu.Unlock()
	defer w.stopPending()

	logger.Info().Str("dir", dir).Msg("watching for new manuals")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !IsSupported(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.SettleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(w.SettleDelay, func() {
		w.mu.Lock()
		if w.stopped {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.inflight.Add(1)
		w.mu.Unlock()
		defer w.inflight.Done()

		if ctx.Err() != nil {
			return
		}
		w.importFile(ctx, path)
	})
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	logger := log.FromCtx(ctx).With().Str("path", path).Logger()

	_, err := w.importer.Import(ctx, path, NameFromPath(path))
	switch {
	case err == nil:
	case errors.Is(err, core.ErrDuplicateManual):
		logger.Info().Msg("manual already in library, skipping")
	case errors.Is(err, core.ErrNoText):
		logger.Warn().Msg("no text extracted, skipping")
	default:
		logger.Error().Err(err).Msg("failed to import manual")
	}
}

// stopPending cancels timers that have not fired and waits for running imports.
func (w *Watcher) stopPending() {
	w.mu.Lock()
	w.stopped = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.inflight.Wait()
}
