package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu      sync.Mutex
	manuals map[string]string
	nextID  int64
}

func newMemRepo() *memRepo {
	return &memRepo{manuals: make(map[string]string)}
}

func (m *memRepo) AddManual(_ context.Context, name, content string) (core.Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.manuals[name]; ok {
		return core.Equipment{}, fmt.Errorf("%w: %q", core.ErrDuplicateManual, name)
	}
	m.nextID++
	m.manuals[name] = content
	return core.Equipment{ID: m.nextID, Name: name}, nil
}

func (m *memRepo) get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.manuals[name]
	return content, ok
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newMemRepo()
	imp := NewImporter(repo)

	path := writeFile(t, dir, "m4.txt", "CHAPTER 1: Cleaning\nClean the bolt carrier.")
	eq, err := imp.Import(ctx, path, "  M4 Carbine ")
	require.NoError(t, err)
	assert.Equal(t, "M4 Carbine", eq.Name)

	content, ok := repo.get("M4 Carbine")
	require.True(t, ok)
	assert.Equal(t, "CHAPTER 1: Cleaning\nClean the bolt carrier.", content)

	md := writeFile(t, dir, "hmmwv.MD", "# Fuel\nTank capacity is 25 gallons.")
	_, err = imp.Import(ctx, md, "HMMWV")
	require.NoError(t, err)
}

func TestImporter_Rejects(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newMemRepo()
	imp := NewImporter(repo)

	valid := writeFile(t, dir, "valid.txt", "some manual text")
	_, err := imp.Import(ctx, valid, "Existing")
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		equip   string
		wantErr error
		wantMsg string
	}{
		{name: "empty name", path: valid, equip: "   ", wantMsg: "name cannot be empty"},
		{name: "missing file", path: filepath.Join(dir, "nope.pdf"), equip: "X", wantMsg: "invalid manual path"},
		{name: "directory", path: dir, equip: "X", wantMsg: "is a directory"},
		{name: "unsupported", path: writeFile(t, dir, "manual.docx", "text"), equip: "X", wantErr: ErrUnsupportedFormat},
		{name: "blank text", path: writeFile(t, dir, "blank.txt", " \n\t "), equip: "X", wantErr: core.ErrNoText},
		{name: "broken pdf", path: writeFile(t, dir, "broken.pdf", "not a pdf"), equip: "X", wantMsg: "failed to read manual"},
		{name: "duplicate", path: valid, equip: "Existing", wantErr: core.ErrDuplicateManual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := imp.Import(ctx, tt.path, tt.equip)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	_, ok := repo.get("X")
	assert.False(t, ok)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "M4 Carbine", NameFromPath("/inbox/M4_Carbine.pdf"))
	assert.Equal(t, "HMMWV", NameFromPath("HMMWV.txt"))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.PDF"))
	assert.True(t, IsSupported("a.md"))
	assert.False(t, IsSupported("a.docx"))
	assert.False(t, IsSupported("README"))
}

func TestWatcher_ImportsNewFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	repo := newMemRepo()
	w := NewWatcher(NewImporter(repo))
	w.SettleDelay = 20 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, dir) }()

	// rewrite until picked up; the watch may not be registered yet on the first write
	require.Eventually(t, func() bool {
		if _, ok := repo.get("M240B"); ok {
			return true
		}
		writeFile(t, dir, "M240B.txt", "Issue: Failure to Feed\nCheck the feed tray.")
		return false
	}, 5*time.Second, 100*time.Millisecond)

	writeFile(t, dir, "notes.docx", "ignored")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}

	_, ok := repo.get("notes")
	assert.False(t, ok)
}

// gatedRepo holds AddManual open until release is closed.
type gatedRepo struct {
	*memRepo
	started chan struct{}
	once    sync.Once
	release chan struct{}
}

func (g *gatedRepo) AddManual(ctx context.Context, name, content string) (core.Equipment, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return g.memRepo.AddManual(ctx, name, content)
}

func TestWatcher_WaitsForRunningImport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	repo := &gatedRepo{memRepo: newMemRepo(), started: make(chan struct{}), release: make(chan struct{})}
	w := NewWatcher(NewImporter(repo))
	w.SettleDelay = 20 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, dir) }()

	require.Eventually(t, func() bool {
		select {
		case <-repo.started:
			return true
		default:
		}
		writeFile(t, dir, "M249.txt", "Issue: Runaway Gun\nTwist the belt to stop feeding.")
		return false
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case <-done:
		t.Fatal("watcher returned while an import was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(repo.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	_, ok := repo.get("M249")
	assert.True(t, ok)
}
