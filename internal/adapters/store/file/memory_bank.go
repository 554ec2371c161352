package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

func (b *MemoryBank) documentPath(doc domain.DocumentName) (string, error) {
	name := string(doc)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid document name %q", doc)
	}

	return filepath.Join(b.root, name), nil
}

func (b *MemoryBank) Read(ctx context.Context, doc domain.DocumentName) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := b.documentPath(doc)
	if err != nil {
		return "", err
	}

	data, err := readEntity(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (b *MemoryBank) Append(ctx context.Context, doc domain.DocumentName, block string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := b.documentPath(doc)
	if err != nil {
		return err
	}

	return appendEntity(path, []byte(block), false)
}
