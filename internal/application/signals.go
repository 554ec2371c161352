package application

import (
	"context"
	"time"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

// Signals derives the full status for the current clock reading.
func (s *HookService) Signals(ctx context.Context) Signals {
	now := s.clock.Now()

	signals := Signals{
		Ops:      s.activityCount(ctx, now),
		Duration: s.elapsedSince(ctx, domain.MarkerSessionStart, now),
		LastSync: domain.SyncAge{Elapsed: s.elapsedSince(ctx, domain.MarkerLastSync, now)},
		Health:   domain.UnknownHealth,
		Profile:  s.profile(ctx),
		Focus:    domain.DefaultFocus,
		Map:      s.mapStatus(ctx, now),
	}

	if doc, ok := s.activeContext(ctx); ok {
		signals.Health = doc.Health()
		signals.Focus = doc.Focus()
	}

	notification, ok := domain.SelectNotification(domain.NotificationInput{
		Ops:              signals.Ops,
		MinutesSinceSync: signals.LastSync.MinutesAgo(),
		Health:           signals.Health,
	})
	if ok {
		signals.Notification = &notification
	}

	return signals
}

func (s *HookService) activityCount(ctx context.Context, now time.Time) int {
	count, err := s.activity.Count(ctx, now)
	if err != nil {
		s.degrade("activity count unavailable", err)
		return 0
	}
	return count
}

func (s *HookService) elapsedSince(ctx context.Context, key domain.MarkerKey, now time.Time) domain.Elapsed {
	marker, err := s.markers.ReadMarker(ctx, key)
	if err != nil {
		s.degrade("marker unavailable", err, "marker", key)
		return domain.Elapsed{}
	}
	return domain.ElapsedSince(now, marker)
}

func (s *HookService) profile(ctx context.Context) string {
	profile, err := s.markers.ReadProfile(ctx)
	if err != nil {
		s.degrade("profile unavailable", err)
		return domain.DefaultProfile
	}
	return profile
}

func (s *HookService) mapStatus(ctx context.Context, now time.Time) domain.MapStatus {
	modTime, err := s.mapCache.ModTime(ctx)
	if err != nil {
		s.degrade("codebase map unavailable", err)
		return domain.MapNone
	}
	return domain.ClassifyMap(now, modTime)
}

func (s *HookService) activeContext(ctx context.Context) (domain.ActiveContext, bool) {
	raw, ok := s.document(ctx, domain.DocumentActiveContext)
	if !ok {
		return domain.ActiveContext{}, false
	}
	return domain.ParseActiveContext(raw), true
}

func (s *HookService) document(ctx context.Context, name domain.DocumentName) (string, bool) {
	raw, err := s.bank.Read(ctx, name)
	if err != nil {
		s.degrade("memory document unavailable", err, "document", name)
		return "", false
	}
	return raw, true
}

func (s *HookService) branch(ctx context.Context) string {
	if s.vcs == nil {
		return ""
	}

	branch, err := s.vcs.CurrentBranch(ctx)
	if err != nil {
		s.degrade("branch query failed", err)
		return ""
	}
	return branch
}

func (s *HookService) uncommittedChanges(ctx context.Context) int {
	if s.vcs == nil {
		return 0
	}

	changes, err := s.vcs.UncommittedChanges(ctx)
	if err != nil {
		s.degrade("working tree query failed", err)
		return 0
	}
	return changes
}
