package domain

import (
	"fmt"
	"strings"
	"time"
)

// MinOpsForSessionUpdate is the activity needed before stop records a session.
const MinOpsForSessionUpdate = 5

const sessionUpdateTimeLayout = "2006-01-02 15:04:05"

type SessionUpdateRecord struct {
	At                 time.Time
	Ops                int
	Duration           Elapsed
	UncommittedChanges int
}

func ShouldRecordSession(ops int) bool {
	return ops >= MinOpsForSessionUpdate
}

func (r SessionUpdateRecord) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## 🗓️ Session Update - %s UTC\n", r.At.UTC().Format(sessionUpdateTimeLayout))
	fmt.Fprintf(&b, "- Activity: %d operations\n", r.Ops)
	if r.Duration.Known {
		fmt.Fprintf(&b, "- Duration: %d minutes\n", r.Duration.Minutes)
	} else {
		b.WriteString("- Duration: unknown minutes\n")
	}
	if r.UncommittedChanges > 0 {
		fmt.Fprintf(&b, "- Git: %d uncommitted changes\n", r.UncommittedChanges)
	}
	return b.String()
}

// AppendBlock is the text to append to doc for this record. The history
// heading is emitted in the same block when doc has no history segment yet.
func (r SessionUpdateRecord) AppendBlock(doc ActiveContext) string {
	if doc.HasHistory() {
		return r.Render()
	}
	return "\n\n" + HistoryHeading + "\n" + r.Render()
}
