package application

import "github.com/bnema/mini-coderbrain/internal/domain"

const (
	EventSessionStart     = "SessionStart"
	EventUserPromptSubmit = "UserPromptSubmit"
)

// HookOutput is what a hook injects into the host. An empty EventName means
// the hook has nothing to emit.
type HookOutput struct {
	EventName         string
	AdditionalContext string
}

func (o HookOutput) Empty() bool {
	return o.EventName == ""
}

// Signals is every status value derived from the durable state for one turn.
type Signals struct {
	Ops          int                  `json:"ops"`
	Duration     domain.Elapsed       `json:"duration"`
	LastSync     domain.SyncAge       `json:"last_sync"`
	Health       domain.MemoryHealth  `json:"memory_health"`
	Profile      string               `json:"profile"`
	Focus        string               `json:"focus"`
	Map          domain.MapStatus     `json:"map"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

type StopResult struct {
	Ops                int
	Duration           domain.Elapsed
	UncommittedChanges int
	Recorded           bool
}
