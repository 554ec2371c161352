package application

import (
	"context"
	"fmt"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

// MarkSynced records a memory sync at the current time.
func (s *HookService) MarkSynced(ctx context.Context) (int64, error) {
	now := s.clock.Now().Unix()
	if err := s.markers.WriteMarker(ctx, domain.MarkerLastSync, now); err != nil {
		return 0, fmt.Errorf("write last sync marker: %w", err)
	}
	return now, nil
}

func (s *HookService) SetProfile(ctx context.Context, name string) error {
	if err := s.markers.WriteProfile(ctx, name); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func (s *HookService) Profile(ctx context.Context) string {
	return s.profile(ctx)
}

// Branch is the current branch, or empty when it cannot be determined.
func (s *HookService) Branch(ctx context.Context) string {
	return s.branch(ctx)
}
