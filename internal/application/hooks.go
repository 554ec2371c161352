package application

import (
	"context"
	"strings"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

const maxAuditPromptRunes = 100

func (s *HookService) SessionStart(ctx context.Context, cmd SessionStartCommand) HookOutput {
	source := strings.TrimSpace(cmd.Source)
	if source == "" {
		source = "unknown"
	}

	s.record(ctx, domain.AuditSessionStart, domain.AuditEntry{SessionID: cmd.SessionID, Source: source})

	if err := s.markers.WriteMarker(ctx, domain.MarkerSessionStart, s.clock.Now().Unix()); err != nil {
		s.degrade("session start marker not written", err)
	}

	boot := BootContext{Source: source, Health: domain.UnknownHealth}
	boot.Branch = s.branch(ctx)

	if content, ok := s.document(ctx, domain.DocumentProductContext); ok && content != "" {
		boot.Documents = append(boot.Documents, LoadedDocument{Name: domain.DocumentProductContext, Content: content})
	}
	if doc, ok := s.activeContext(ctx); ok {
		boot.Health = doc.Health()
		if doc.Core != "" {
			boot.Documents = append(boot.Documents, LoadedDocument{Name: domain.DocumentActiveContext, Content: doc.Core})
		}
	}
	if content, ok := s.document(ctx, domain.DocumentSystemPatterns); ok && content != "" {
		boot.Documents = append(boot.Documents, LoadedDocument{Name: domain.DocumentSystemPatterns, Content: content})
	}

	return HookOutput{EventName: EventSessionStart, AdditionalContext: boot.Render()}
}

// UserPromptSubmit counts the turn and returns the status footer.
func (s *HookService) UserPromptSubmit(ctx context.Context, cmd UserPromptCommand) HookOutput {
	prompt := domain.TruncateRunes(cmd.Prompt, maxAuditPromptRunes)
	s.record(ctx, domain.AuditUserPromptSubmit, domain.AuditEntry{SessionID: cmd.SessionID, Prompt: &prompt})

	if err := s.activity.Append(ctx, s.clock.Now()); err != nil {
		s.degrade("activity not recorded", err)
	}

	return HookOutput{EventName: EventUserPromptSubmit, AdditionalContext: TurnContext(s.Signals(ctx))}
}

// Stop appends a session update record once the day has enough activity.
func (s *HookService) Stop(ctx context.Context, cmd StopCommand) StopResult {
	s.record(ctx, domain.AuditStop, domain.AuditEntry{SessionID: cmd.SessionID})

	now := s.clock.Now()
	result := StopResult{
		Ops:      s.activityCount(ctx, now),
		Duration: s.elapsedSince(ctx, domain.MarkerSessionStart, now),
	}

	if !domain.ShouldRecordSession(result.Ops) {
		return result
	}

	doc, ok := s.activeContext(ctx)
	if !ok {
		return result
	}

	result.UncommittedChanges = s.uncommittedChanges(ctx)
	record := domain.SessionUpdateRecord{
		At:                 now,
		Ops:                result.Ops,
		Duration:           result.Duration,
		UncommittedChanges: result.UncommittedChanges,
	}

	if err := s.bank.Append(ctx, domain.DocumentActiveContext, record.AppendBlock(doc)); err != nil {
		s.degrade("session update not recorded", err)
		return result
	}

	result.Recorded = true
	s.logger.Debug("session update recorded", "ops", result.Ops, "duration", result.Duration.String())
	return result
}
