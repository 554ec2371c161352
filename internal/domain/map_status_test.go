package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMap(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, MapStale, ClassifyMap(now, now.Add(-25*time.Hour)))
	assert.Equal(t, MapFresh, ClassifyMap(now, now.Add(-23*time.Hour)))
	assert.Equal(t, MapFresh, ClassifyMap(now, now.Add(-24*time.Hour)))
	assert.Equal(t, MapFresh, ClassifyMap(now, now))
}
