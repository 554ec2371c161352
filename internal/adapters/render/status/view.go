package status

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/mini-coderbrain/internal/application"
	"github.com/bnema/mini-coderbrain/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyWidth      = 11
	activityWidth = 24
)

type RenderOptions struct {
	ProjectDir string
	Branch     string
}

func renderView(signals application.Signals, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Mini-CoderBrain Status")}
	if opts.ProjectDir != "" {
		lines = append(lines, s.header.Render("project: "+opts.ProjectDir))
	}
	if opts.Branch != "" {
		lines = append(lines, s.header.Render("branch: "+opts.Branch))
	}

	session := lipgloss.JoinVertical(lipgloss.Left,
		row(s, "Activity", activityLine(signals.Ops, s)),
		row(s, "Session", s.value.Render(signals.Duration.String())),
		row(s, "Last sync", s.value.Render(signals.LastSync.String())),
		row(s, "Profile", s.value.Render(signals.Profile)),
		row(s, "Focus", s.value.Render(signals.Focus)),
	)

	memory := lipgloss.JoinVertical(lipgloss.Left,
		row(s, "Memory", healthLine(signals.Health, s)),
		row(s, "Map", mapLine(signals.Map, s)),
	)

	lines = append(lines, s.section.Render(session), s.section.Render(memory))

	if signals.Notification != nil {
		lines = append(lines, s.section.Render(s.notice.Render(signals.Notification.Message)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key), value)
}

func activityLine(ops int, s styles) string {
	label := s.value.Render(fmt.Sprintf("%d ops", ops))
	bar := renderProgressBar(float64(ops)/domain.HighActivityOps*100, activityWidth, s)
	if ops >= domain.HighActivityOps {
		return lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", label, " ", s.warning.Render("[busy]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", label)
}

func healthLine(health domain.MemoryHealth, s styles) string {
	style := lipgloss.NewStyle().Foreground(tierColor(int(health.Tier)))
	if health.Tier == domain.HealthUnknown {
		return s.empty.Render(health.Tier.Label())
	}

	label := style.Render(health.Tier.Label())
	updates := s.header.Render(fmt.Sprintf("(%d session updates)", health.SessionUpdates))
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", updates)
}

func mapLine(status domain.MapStatus, s styles) string {
	switch status {
	case domain.MapStale:
		return s.warning.Render(string(status))
	case domain.MapFresh:
		return s.value.Render(string(status))
	default:
		return s.empty.Render(string(status))
	}
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
