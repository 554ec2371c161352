package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

func (c *MapCache) ModTime(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	path := filepath.Join(c.root, codebaseMapFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, path)
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return info.ModTime(), nil
}
