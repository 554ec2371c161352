package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/mini-coderbrain/internal/domain"
	"github.com/bnema/mini-coderbrain/internal/ports"
)

const (
	stateDirMode  = 0o755
	stateFileMode = 0o644

	toolTrackingDir  = "conversations/tool-tracking"
	activityLogExt   = "-tools.log"
	profileFile      = "current-profile"
	codebaseMapFile  = "codebase-map.json"
	markerTempFormat = ".%s-*.tmp"
)

// Layout locates every durable entity. Roots are absolute.
type Layout struct {
	MemoryRoot string
	TmpRoot    string
	CacheRoot  string
}

// Store is the filesystem-backed durable state. It holds no locks: markers
// are last-writer-wins and log appends rely on O_APPEND single writes.
type Store struct {
	layout Layout
}

type ActivityLog struct{ root string }

type Markers struct{ root string }

type MemoryBank struct{ root string }

type MapCache struct{ root string }

var (
	_ ports.ActivityLog = (*ActivityLog)(nil)
	_ ports.MarkerStore = (*Markers)(nil)
	_ ports.MemoryBank  = (*MemoryBank)(nil)
	_ ports.MapCache    = (*MapCache)(nil)
)

func NewStore(layout Layout) *Store {
	return &Store{layout: Layout{
		MemoryRoot: filepath.Clean(layout.MemoryRoot),
		TmpRoot:    filepath.Clean(layout.TmpRoot),
		CacheRoot:  filepath.Clean(layout.CacheRoot),
	}}
}

func (s *Store) Layout() Layout {
	return s.layout
}

func (s *Store) ActivityLog() *ActivityLog {
	return &ActivityLog{root: s.layout.MemoryRoot}
}

func (s *Store) Markers() *Markers {
	return &Markers{root: s.layout.TmpRoot}
}

func (s *Store) MemoryBank() *MemoryBank {
	return &MemoryBank{root: s.layout.MemoryRoot}
}

func (s *Store) MapCache() *MapCache {
	return &MapCache{root: s.layout.CacheRoot}
}

func readEntity(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

func appendEntity(path string, data []byte, create bool) error {
	flags := os.O_APPEND | os.O_WRONLY
	if create {
		if err := os.MkdirAll(filepath.Dir(path), stateDirMode); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
		flags |= os.O_CREATE
	}

	f, err := os.OpenFile(path, flags, stateFileMode)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, path)
		}
		return fmt.Errorf("open %s for append: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

// replaceEntity writes data to a sibling temp file and renames it over path.
func replaceEntity(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tempFile, err := os.CreateTemp(dir, fmt.Sprintf(markerTempFormat, filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	cleanup = false
	return nil
}
