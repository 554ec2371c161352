package domain

import "strings"

type HealthTier int

const (
	HealthUnknown HealthTier = iota
	HealthHealthy
	HealthMonitor
	HealthNeedsCleanup
	HealthCritical
)

const (
	monitorAbove      = 8
	needsCleanupAbove = 10
	criticalAbove     = 15
)

var sessionUpdateHeadings = []string{
	"## Session Update",
	"## 🗓️ Session Update",
}

// ClassifyHealth maps a session-update count onto a tier, most severe first.
func ClassifyHealth(sessionUpdates int) HealthTier {
	switch {
	case sessionUpdates > criticalAbove:
		return HealthCritical
	case sessionUpdates > needsCleanupAbove:
		return HealthNeedsCleanup
	case sessionUpdates > monitorAbove:
		return HealthMonitor
	default:
		return HealthHealthy
	}
}

func (t HealthTier) Label() string {
	switch t {
	case HealthHealthy:
		return "Healthy"
	case HealthMonitor:
		return "Monitor"
	case HealthNeedsCleanup:
		return "Needs Cleanup"
	case HealthCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Badge is the label decorated for the session-start banner.
func (t HealthTier) Badge() string {
	switch t {
	case HealthHealthy:
		return "✅ Healthy"
	case HealthMonitor:
		return "💡 Monitor"
	case HealthNeedsCleanup:
		return "⚠️ Needs Cleanup"
	case HealthCritical:
		return "🚨 Critical"
	default:
		return "Unknown"
	}
}

func (t HealthTier) MarshalText() ([]byte, error) {
	return []byte(t.Label()), nil
}

type MemoryHealth struct {
	Tier           HealthTier `json:"tier"`
	SessionUpdates int        `json:"session_updates"`
}

// UnknownHealth is reported when the active context cannot be read.
var UnknownHealth = MemoryHealth{Tier: HealthUnknown}

// AssessMemoryHealth counts session-update headings in the raw active context.
func AssessMemoryHealth(activeContext string) MemoryHealth {
	count := 0
	for _, heading := range sessionUpdateHeadings {
		count += strings.Count(activeContext, heading)
	}

	return MemoryHealth{Tier: ClassifyHealth(count), SessionUpdates: count}
}

func (h MemoryHealth) CleanupRecommended() bool {
	return h.SessionUpdates > needsCleanupAbove
}
