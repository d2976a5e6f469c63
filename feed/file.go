package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/core"
)

// DefaultDebounce coalesces bursts of writes from editors and copy tools
const DefaultDebounce = 200 * time.Millisecond

// FileSource reads a local dataset document
type FileSource struct {
	Path string
	Log  logrus.FieldLogger
}

// Fetch reads and decodes the document
func (f *FileSource) Fetch(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read dataset: %w", err)
	}
	snap, err := DecodeDocument(data, f.Log)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return snap, nil
}

// Watcher re-reads a FileSource whenever the file changes
type Watcher struct {
	src      *FileSource
	file     string
	debounce time.Duration
	log      logrus.FieldLogger

	fsw     *fsnotify.Watcher
	updates chan Snapshot

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewWatcher creates a watcher for src, non-positive debounce uses DefaultDebounce
func NewWatcher(src *FileSource, debounce time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", src.Path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		src:      src,
		file:     abs,
		debounce: debounce,
		log:      log.WithField("component", "watcher"),
		fsw:      fsw,
		updates:  make(chan Snapshot, 1),
		stopChan: make(chan struct{}),
	}, nil
}

// Updates delivers the document after each settled change
func (w *Watcher) Updates() <-chan Snapshot {
	return w.updates
}

// Start watches the containing directory so atomic renames are seen
func (w *Watcher) Start() error {
	if !w.running.CompareAndSwap(false, true) {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(w.file)); err != nil {
		w.running.Store(false)
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.file), err)
	}
	w.log.WithField("path", w.file).Debug("watching dataset")

	w.wg.Add(1)
	core.Go(w.run)
	return nil
}

// Stop ends the watch and releases the notifier
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.running.CompareAndSwap(true, false) {
			close(w.stopChan)
			w.wg.Wait()
		}
		if err := w.fsw.Close(); err != nil {
			w.log.WithError(err).Warn("close file watcher")
		}
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.stopChan:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("file watcher error")

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	snap, err := w.src.Fetch(context.Background())
	if err != nil {
		// A half-written file will be followed by another event
		w.log.WithError(err).Warn("reload failed")
		return
	}
	w.log.WithFields(logrus.Fields{"points": len(snap.Points), "zones": len(snap.Zones)}).Debug("dataset reloaded")
	deliver(w.updates, snap)
}
