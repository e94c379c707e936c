// Package reload keeps an inflexion Environment current with the files
// it was loaded from.
package reload

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflexion"
)

// BuildFunc loads a fresh Environment.
type BuildFunc func() (*inflexion.Environment, error)

// Reloader holds the current Environment and rebuilds it when a watched
// file changes. A failed rebuild keeps the previous Environment.
type Reloader struct {
	build    BuildFunc
	log      *zap.Logger
	debounce time.Duration

	current atomic.Pointer[inflexion.Environment]

	dirs  []string
	files map[string]bool // empty means every file in dirs

	mu       sync.Mutex
	timer    *time.Timer
	onReload []func(*inflexion.Environment, error)
}

// Config says what to watch.
type Config struct {
	// DataDir is watched for nouns.txt and prepositions.txt.
	DataDir   string
	UserNouns []string
	Debounce  time.Duration
}

const defaultDebounce = 500 * time.Millisecond

// New builds the first Environment. It fails if that first build does.
func New(cfg Config, build BuildFunc, log *zap.Logger) (*Reloader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	env, err := build()
	if err != nil {
		return nil, err
	}
	r := &Reloader{
		build:    build,
		log:      log,
		debounce: cfg.Debounce,
		files:    make(map[string]bool),
	}
	if r.debounce <= 0 {
		r.debounce = defaultDebounce
	}
	r.current.Store(env)

	seen := make(map[string]bool)
	addDir := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			r.dirs = append(r.dirs, dir)
		}
	}
	if cfg.DataDir != "" {
		dir := filepath.Clean(cfg.DataDir)
		addDir(dir)
		r.files[filepath.Join(dir, "nouns.txt")] = true
		r.files[filepath.Join(dir, "prepositions.txt")] = true
	}
	for _, path := range cfg.UserNouns {
		path = filepath.Clean(path)
		addDir(filepath.Dir(path))
		r.files[path] = true
	}
	return r, nil
}

// Current returns the Environment in use.
func (r *Reloader) Current() *inflexion.Environment {
	return r.current.Load()
}

// OnReload registers fn to run after every rebuild attempt.
func (r *Reloader) OnReload(fn func(*inflexion.Environment, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = append(r.onReload, fn)
}

// Reload rebuilds the Environment now.
func (r *Reloader) Reload() error {
	env, err := r.build()
	if err != nil {
		r.log.Error("reload failed, keeping previous data", zap.Error(err))
	} else {
		r.current.Store(env)
		r.log.Info("inflection data reloaded")
	}

	r.mu.Lock()
	callbacks := slices.Clone(r.onReload)
	r.mu.Unlock()
	for _, fn := range callbacks {
		fn(r.Current(), err)
	}
	return err
}

// Run watches the files until ctx is done.
func (r *Reloader) Run(ctx context.Context) error {
	if len(r.dirs) == 0 {
		<-ctx.Done()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	// Directories rather than files, so editors that replace the file on
	// save keep being seen.
	for _, dir := range r.dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
		r.log.Debug("watching", zap.String("dir", dir))
	}

	defer r.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if r.relevant(ev) {
				r.schedule()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (r *Reloader) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return r.files[filepath.Clean(ev.Name)]
}

// schedule coalesces a burst of events into one reload.
func (r *Reloader) schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() { _ = r.Reload() })
}

func (r *Reloader) stopTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
}
