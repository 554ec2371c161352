package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/mini-coderbrain/internal/domain"
	"github.com/bnema/mini-coderbrain/internal/ports"
)

const (
	logsDirMode  = 0o755
	logsFileMode = 0o644
	tempPattern  = ".%s-*.json.tmp"
)

// Log keeps one JSON array per audit stream. Every record rewrites the
// whole file; a file that no longer decodes is started over.
type Log struct {
	dir string
}

var _ ports.AuditLog = (*Log)(nil)

func NewLog(dir string) *Log {
	return &Log{dir: filepath.Clean(dir)}
}

func (l *Log) path(stream domain.AuditStream) (string, error) {
	name := strings.TrimSpace(string(stream))
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid audit stream %q", stream)
	}

	return filepath.Join(l.dir, name+".json"), nil
}

func (l *Log) Record(ctx context.Context, stream domain.AuditStream, entry domain.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := l.path(stream)
	if err != nil {
		return err
	}

	records, err := l.read(path)
	if err != nil {
		return err
	}

	encoded, err := encode(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	records = append(records, encoded)

	if err := ctx.Err(); err != nil {
		return err
	}

	return l.write(path, records)
}

// Entries returns the raw records of a stream, oldest first.
func (l *Log) Entries(ctx context.Context, stream domain.AuditStream) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.path(stream)
	if err != nil {
		return nil, err
	}

	return l.read(path)
}

func (l *Log) read(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}

	return records, nil
}

// encode keeps prompts readable: no HTML escaping of <, > and &.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (l *Log) write(path string, records []json.RawMessage) error {
	if err := os.MkdirAll(l.dir, logsDirMode); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	compact, err := encode(records)
	if err != nil {
		return fmt.Errorf("encode audit log: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("indent audit log: %w", err)
	}
	buf.WriteByte('\n')

	tempFile, err := os.CreateTemp(l.dir, fmt.Sprintf(tempPattern, strings.TrimSuffix(filepath.Base(path), ".json")))
	if err != nil {
		return fmt.Errorf("create temp audit log: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(buf.Bytes()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp audit log: %w", err)
	}

	if err := tempFile.Chmod(logsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp audit log: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp audit log: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace audit log: %w", err)
	}

	cleanup = false
	return nil
}
