package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/mini-coderbrain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	root := t.TempDir()
	return NewStore(Layout{
		MemoryRoot: filepath.Join(root, ".claude", "memory"),
		TmpRoot:    filepath.Join(root, ".claude", "tmp"),
		CacheRoot:  filepath.Join(root, ".claude", "cache"),
	}), root
}

func TestActivityLogCountsPerDay(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	log := store.ActivityLog()
	ctx := context.Background()
	day := time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)

	count, err := log.Count(ctx, day)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
	assert.Zero(t, count)

	for i := 0; i < 3; i++ {
		require.NoError(t, log.Append(ctx, day.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, log.Append(ctx, day.AddDate(0, 0, 1)))

	count, err = log.Count(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = log.Count(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = os.Stat(filepath.Join(root, ".claude", "memory", "conversations", "tool-tracking", "2026-10-17-tools.log"))
	require.NoError(t, err)
}

func TestActivityLogCountsUnterminatedTrailingLine(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	dir := filepath.Join(root, ".claude", "memory", "conversations", "tool-tracking")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-10-17-tools.log"), []byte("a\nb\nc"), 0o644))

	count, err := store.ActivityLog().Count(context.Background(), time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestActivityLogConcurrentAppendsAreNotLost(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	log := store.ActivityLog()
	day := time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, log.Append(context.Background(), day))
		}()
	}
	wg.Wait()

	count, err := log.Count(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestMarkersOverwriteAndDegrade(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	markers := store.Markers()
	ctx := context.Background()

	_, err := markers.ReadMarker(ctx, domain.MarkerSessionStart)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	require.NoError(t, markers.WriteMarker(ctx, domain.MarkerSessionStart, 1_760_000_000))
	require.NoError(t, markers.WriteMarker(ctx, domain.MarkerSessionStart, 1_760_000_600))

	got, err := markers.ReadMarker(ctx, domain.MarkerSessionStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1_760_000_600), got)

	raw, err := os.ReadFile(filepath.Join(root, ".claude", "tmp", "session-start-time"))
	require.NoError(t, err)
	assert.Equal(t, "1760000600", string(raw))

	entries, err := os.ReadDir(filepath.Join(root, ".claude", "tmp"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, os.WriteFile(filepath.Join(root, ".claude", "tmp", "last-memory-sync"), []byte("not-a-number"), 0o644))
	_, err = markers.ReadMarker(ctx, domain.MarkerLastSync)
	require.ErrorIs(t, err, domain.ErrMalformedEntity)
}

func TestMarkersAcceptTrailingWhitespace(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	dir := filepath.Join(root, ".claude", "tmp")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last-memory-sync"), []byte(" 1760000000\n"), 0o644))

	got, err := store.Markers().ReadMarker(context.Background(), domain.MarkerLastSync)
	require.NoError(t, err)
	assert.Equal(t, int64(1_760_000_000), got)
}

func TestMarkersRejectPathKeys(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	for _, key := range []domain.MarkerKey{"", "../escape", "nested/key", ".."} {
		err := store.Markers().WriteMarker(context.Background(), key, 1)
		assert.ErrorContains(t, err, "invalid marker key", "key %q", key)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	markers := store.Markers()
	ctx := context.Background()

	_, err := markers.ReadProfile(ctx)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	require.NoError(t, markers.WriteProfile(ctx, "  focus-mode \n"))
	got, err := markers.ReadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "focus-mode", got)

	assert.Error(t, markers.WriteProfile(ctx, "   "))
	assert.Error(t, markers.WriteProfile(ctx, "two\nlines"))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".claude", "tmp", "current-profile"), []byte("\n"), 0o644))
	_, err = markers.ReadProfile(ctx)
	require.ErrorIs(t, err, domain.ErrMalformedEntity)
}

func TestMemoryBankAppendNeverCreates(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	bank := store.MemoryBank()
	ctx := context.Background()

	err := bank.Append(ctx, domain.DocumentActiveContext, "block")
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
	_, err = os.Stat(filepath.Join(root, ".claude", "memory", "activeContext.md"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude", "memory"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".claude", "memory", "activeContext.md"), []byte("# Active\n"), 0o644))

	require.NoError(t, bank.Append(ctx, domain.DocumentActiveContext, "\n## 🗓️ Session Update - x\n"))

	got, err := bank.Read(ctx, domain.DocumentActiveContext)
	require.NoError(t, err)
	assert.Equal(t, "# Active\n\n## 🗓️ Session Update - x\n", got)

	_, err = bank.Read(ctx, domain.DocumentSystemPatterns)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestMapCacheModTime(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t)
	cache := store.MapCache()

	_, err := cache.ModTime(context.Background())
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	path := filepath.Join(root, ".claude", "cache", "codebase-map.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	mtime := time.Date(2026, 10, 16, 11, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	got, err := cache.ModTime(context.Background())
	require.NoError(t, err)
	assert.True(t, mtime.Equal(got))
}

func TestCanceledContextIsRejected(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.ActivityLog().Append(ctx, time.Now()), context.Canceled)
	_, err := store.Markers().ReadMarker(ctx, domain.MarkerLastSync)
	assert.ErrorIs(t, err, context.Canceled)
}
