package domain

import "time"

type MapStatus string

const (
	MapNone  MapStatus = "None"
	MapStale MapStatus = "Stale"
	MapFresh MapStatus = "Fresh"

	MapFreshFor = 24 * time.Hour
)

func ClassifyMap(now, modTime time.Time) MapStatus {
	if now.Sub(modTime) > MapFreshFor {
		return MapStale
	}
	return MapFresh
}
