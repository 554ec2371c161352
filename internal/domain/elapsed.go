package domain

import (
	"fmt"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour

	// NeverSyncedMinutes stands in for an absent last-sync marker.
	NeverSyncedMinutes int64 = 99999
)

// Elapsed is a whole-minute span measured from an epoch-seconds marker.
// The zero value is an unknown span.
type Elapsed struct {
	Minutes int64
	Known   bool
}

func ElapsedSince(now time.Time, markerEpoch int64) Elapsed {
	return Elapsed{Minutes: floorDiv(now.Unix()-markerEpoch, 60), Known: true}
}

// String renders Nm, Hh Mm or Dd Hh without rounding.
func (e Elapsed) String() string {
	if !e.Known {
		return "Unknown"
	}

	m := e.Minutes
	switch {
	case m < minutesPerHour:
		return fmt.Sprintf("%dm", m)
	case m < minutesPerDay:
		return fmt.Sprintf("%dh %dm", m/minutesPerHour, m%minutesPerHour)
	default:
		return fmt.Sprintf("%dd %dh", m/minutesPerDay, (m%minutesPerDay)/minutesPerHour)
	}
}

func (e Elapsed) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// SyncAge is the time since the last memory sync.
type SyncAge struct {
	Elapsed
}

// MinutesAgo treats a missing marker as an effectively infinite age.
func (s SyncAge) MinutesAgo() int64 {
	if !s.Known {
		return NeverSyncedMinutes
	}
	return s.Minutes
}

func (s SyncAge) String() string {
	if !s.Known {
		return "Never"
	}

	m := s.Minutes
	switch {
	case m == 0:
		return "Just now"
	case m < minutesPerHour:
		return fmt.Sprintf("%dm ago", m)
	case m < minutesPerDay:
		return fmt.Sprintf("%dh ago", m/minutesPerHour)
	default:
		return fmt.Sprintf("%dd ago", m/minutesPerDay)
	}
}

func (s SyncAge) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
