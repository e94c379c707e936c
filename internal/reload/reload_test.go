package reload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/cours-de-latin/inflexion"
)

func writeData(t *testing.T, dir, nouns string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prepositions.txt"), []byte("of\nin\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nouns.txt"), []byte(nouns), 0o644))
}

func builder(t *testing.T, dir string) BuildFunc {
	log := zaptest.NewLogger(t)
	return func() (*inflexion.Environment, error) {
		return inflexion.New(dir, inflexion.WithLogger(log))
	}
}

func TestReloadSwapsEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "ox => oxes\n")

	r, err := New(Config{DataDir: dir}, builder(t, dir), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "oxes", r.Current().Noun("ox").Plural())

	writeData(t, dir, "ox => oxen\n")
	require.NoError(t, r.Reload())
	assert.Equal(t, "oxen", r.Current().Noun("ox").Plural())
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "ox => oxen\n")

	r, err := New(Config{DataDir: dir}, builder(t, dir), zaptest.NewLogger(t))
	require.NoError(t, err)
	before := r.Current()

	var seen error
	r.OnReload(func(_ *inflexion.Environment, err error) { seen = err })

	writeData(t, dir, "ox => a => b\n")
	assert.Error(t, r.Reload())
	assert.Error(t, seen)
	assert.Same(t, before, r.Current())
}

func TestNewFailsOnBadData(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "=> nothing\n")
	_, err := New(Config{DataDir: dir}, builder(t, dir), nil)
	assert.Error(t, err)
}

func TestRunWatchesFiles(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "ox => oxes\n")

	r, err := New(Config{DataDir: dir, Debounce: 20 * time.Millisecond}, builder(t, dir), zaptest.NewLogger(t))
	require.NoError(t, err)

	reloaded := make(chan struct{}, 8)
	r.OnReload(func(_ *inflexion.Environment, err error) {
		if err == nil {
			reloaded <- struct{}{}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.Run(ctx) })

	// let the watcher register before writing
	time.Sleep(100 * time.Millisecond)
	writeData(t, dir, "ox => oxen\n")

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing nouns.txt")
	}
	assert.Equal(t, "oxen", r.Current().Noun("ox").Plural())

	cancel()
	require.NoError(t, g.Wait())
}

func TestRunWithoutFilesBlocksUntilDone(t *testing.T) {
	r, err := New(Config{}, func() (*inflexion.Environment, error) { return inflexion.New("") }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.NoError(t, r.Run(ctx))
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "")
	user := filepath.Join(t.TempDir(), "mine.txt")
	require.NoError(t, os.WriteFile(user, nil, 0o644))

	r, err := New(Config{DataDir: dir, UserNouns: []string{user}}, builder(t, dir), nil)
	require.NoError(t, err)
	assert.Len(t, r.dirs, 2)

	assert.True(t, r.relevant(fsnotifyEvent(filepath.Join(dir, "nouns.txt"))))
	assert.True(t, r.relevant(fsnotifyEvent(user)))
	assert.False(t, r.relevant(fsnotifyEvent(filepath.Join(dir, "notes.md"))))
}

func fsnotifyEvent(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}
