package ports

import (
	"context"
	"time"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

// Reads return domain.ErrEntityNotFound for absent entities and
// domain.ErrMalformedEntity for content that cannot be parsed.

type ActivityLog interface {
	Append(ctx context.Context, at time.Time) error
	Count(ctx context.Context, day time.Time) (int, error)
}

type MarkerStore interface {
	ReadMarker(ctx context.Context, key domain.MarkerKey) (int64, error)
	WriteMarker(ctx context.Context, key domain.MarkerKey, epoch int64) error
	ReadProfile(ctx context.Context) (string, error)
	WriteProfile(ctx context.Context, name string) error
}

type MemoryBank interface {
	Read(ctx context.Context, doc domain.DocumentName) (string, error)
	// Append never creates a missing document.
	Append(ctx context.Context, doc domain.DocumentName, block string) error
}

type MapCache interface {
	ModTime(ctx context.Context) (time.Time, error)
}
