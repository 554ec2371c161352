package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bnema/mini-coderbrain/internal/domain"
	"github.com/bnema/mini-coderbrain/internal/ports"
	"github.com/google/uuid"
)

// Dependencies are the collaborators a HookService reads and writes through.
type Dependencies struct {
	Activity ports.ActivityLog
	Markers  ports.MarkerStore
	Bank     ports.MemoryBank
	MapCache ports.MapCache
	Audit    ports.AuditLog
	VCS      ports.VCS
	Clock    ports.Clock
	Logger   *slog.Logger
	// NewID labels audit records; defaults to random UUIDs.
	NewID func() string
}

// HookService runs the lifecycle hooks. Store and query failures never
// leave it: each accessor maps its error to a fixed default and logs it.
type HookService struct {
	activity ports.ActivityLog
	markers  ports.MarkerStore
	bank     ports.MemoryBank
	mapCache ports.MapCache
	audit    ports.AuditLog
	vcs      ports.VCS
	clock    ports.Clock
	logger   *slog.Logger
	newID    func() string
}

func NewHookService(deps Dependencies) *HookService {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &HookService{
		activity: deps.Activity,
		markers:  deps.Markers,
		bank:     deps.Bank,
		mapCache: deps.MapCache,
		audit:    deps.Audit,
		vcs:      deps.VCS,
		clock:    deps.Clock,
		logger:   deps.Logger,
		newID:    deps.NewID,
	}
}

func (s *HookService) degrade(msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err)
	if errors.Is(err, domain.ErrEntityNotFound) {
		s.logger.Debug(msg, attrs...)
		return
	}
	s.logger.Warn(msg, attrs...)
}

func (s *HookService) record(ctx context.Context, stream domain.AuditStream, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}

	entry.Timestamp = s.clock.Now()
	entry.InvocationID = s.newID()
	if entry.SessionID == "" {
		entry.SessionID = domain.UnknownSession
	}

	if err := s.audit.Record(ctx, stream, entry); err != nil {
		s.degrade("audit record failed", err, "stream", stream)
	}
}
