package file

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

func (m *Markers) markerPath(key domain.MarkerKey) (string, error) {
	name := strings.TrimSpace(string(key))
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid marker key %q", key)
	}

	return filepath.Join(m.root, name), nil
}

func (m *Markers) ReadMarker(ctx context.Context, key domain.MarkerKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path, err := m.markerPath(key)
	if err != nil {
		return 0, err
	}

	data, err := readEntity(path)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: marker %q: %v", domain.ErrMalformedEntity, key, err)
	}

	return value, nil
}

func (m *Markers) WriteMarker(ctx context.Context, key domain.MarkerKey, epoch int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := m.markerPath(key)
	if err != nil {
		return err
	}

	return replaceEntity(path, []byte(strconv.FormatInt(epoch, 10)))
}

func (m *Markers) ReadProfile(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := readEntity(filepath.Join(m.root, profileFile))
	if err != nil {
		return "", err
	}

	profile := strings.TrimSpace(string(data))
	if profile == "" {
		return "", fmt.Errorf("%w: profile is empty", domain.ErrMalformedEntity)
	}

	return profile, nil
}

func (m *Markers) WriteProfile(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("profile name is empty")
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("profile name %q must be a single line", name)
	}

	return replaceEntity(filepath.Join(m.root, profileFile), []byte(name))
}
