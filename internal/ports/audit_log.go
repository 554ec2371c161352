package ports

import (
	"context"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

type AuditLog interface {
	Record(ctx context.Context, stream domain.AuditStream, entry domain.AuditEntry) error
}
