package file

import (
	"bytes"
	"context"
	"path/filepath"
	"time"
)

const dayLayout = "2006-01-02"

func (l *ActivityLog) activityPath(day time.Time) string {
	return filepath.Join(l.root, toolTrackingDir, day.Format(dayLayout)+activityLogExt)
}

// Append records one invocation in the log for the calendar day of at.
func (l *ActivityLog) Append(ctx context.Context, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return appendEntity(l.activityPath(at), []byte(at.Format(time.RFC3339Nano)+"\n"), true)
}

// Count returns the number of lines in the log for day. A trailing line
// without a newline still counts.
func (l *ActivityLog) Count(ctx context.Context, day time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := readEntity(l.activityPath(day))
	if err != nil {
		return 0, err
	}

	count := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		count++
	}

	return count, nil
}
