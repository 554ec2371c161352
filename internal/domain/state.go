package domain

import "time"

// MarkerKey names a single-value record in the temp tree.
type MarkerKey string

const (
	MarkerSessionStart MarkerKey = "session-start-time"
	MarkerLastSync     MarkerKey = "last-memory-sync"
)

type DocumentName string

const (
	DocumentProductContext DocumentName = "productContext.md"
	DocumentActiveContext  DocumentName = "activeContext.md"
	DocumentSystemPatterns DocumentName = "systemPatterns.md"
)

// Label is the document name without its extension, as shown in injected context.
func (d DocumentName) Label() string {
	switch d {
	case DocumentProductContext:
		return "productContext"
	case DocumentActiveContext:
		return "activeContext"
	case DocumentSystemPatterns:
		return "systemPatterns"
	default:
		return string(d)
	}
}

const (
	DefaultProfile = "default"
	DefaultFocus   = "Development"
	UnknownSession = "unknown"
)

type AuditStream string

const (
	AuditSessionStart     AuditStream = "session_start"
	AuditUserPromptSubmit AuditStream = "user_prompt_submit"
	AuditStop             AuditStream = "stop"
)

// AuditEntry is one record in an audit stream. Optional fields are omitted
// from the stream they do not belong to.
type AuditEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	InvocationID string    `json:"invocation_id,omitempty"`
	Source       string    `json:"source,omitempty"`
	Prompt       *string   `json:"prompt,omitempty"`
}
