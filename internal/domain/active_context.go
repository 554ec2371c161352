package domain

import (
	"strings"
	"unicode/utf8"
)

const maxFocusRunes = 50

var (
	historyMarkers = []string{"## Session Updates", "## 📜 Session Updates"}
	focusHeadings  = []string{"## 🎯 Current Focus", "## Current Focus"}
)

// HistoryHeading opens the session history segment when a document has none yet.
const HistoryHeading = "## 📜 Session Updates"

// ActiveContext is the active-context document split into the core segment
// loaded at session start and the append-only session history.
type ActiveContext struct {
	Raw     string
	Core    string
	History string
}

// ParseActiveContext splits raw at the first line that opens the history
// segment. Core is trimmed of surrounding whitespace; History keeps the
// marker line and everything after it verbatim.
func ParseActiveContext(raw string) ActiveContext {
	doc := ActiveContext{Raw: raw}

	offset := 0
	for _, line := range strings.SplitAfter(raw, "\n") {
		if isHistoryMarker(line) {
			doc.Core = strings.TrimSpace(raw[:offset])
			doc.History = raw[offset:]
			return doc
		}
		offset += len(line)
	}

	doc.Core = strings.TrimSpace(raw)
	return doc
}

func isHistoryMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range historyMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// HasHistory reports whether ParseActiveContext found a line opening the
// history segment.
func (a ActiveContext) HasHistory() bool {
	return a.History != ""
}

func (a ActiveContext) Health() MemoryHealth {
	return AssessMemoryHealth(a.Raw)
}

// Focus returns the first non-blank, non-heading line after a Current Focus
// heading, truncated to 50 runes.
func (a ActiveContext) Focus() string {
	inFocus := false
	for _, line := range strings.Split(a.Raw, "\n") {
		if containsAny(line, focusHeadings) {
			inFocus = true
			continue
		}
		if !inFocus || strings.HasPrefix(line, "#") {
			continue
		}
		if focus := strings.TrimSpace(line); focus != "" {
			return truncateRunes(focus, maxFocusRunes)
		}
	}

	return DefaultFocus
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max])
}

// TruncateRunes is exported for audit fields that cap free text.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return truncateRunes(s, max)
}
