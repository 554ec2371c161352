package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/mini-coderbrain/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type inMemoryActivity struct {
	days map[string]int
	err  error
}

func (a *inMemoryActivity) Append(_ context.Context, at time.Time) error {
	if a.err != nil {
		return a.err
	}
	if a.days == nil {
		a.days = map[string]int{}
	}
	a.days[at.Format("2006-01-02")]++
	return nil
}

func (a *inMemoryActivity) Count(_ context.Context, day time.Time) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	count, ok := a.days[day.Format("2006-01-02")]
	if !ok {
		return 0, domain.ErrEntityNotFound
	}
	return count, nil
}

type inMemoryMarkers struct {
	values  map[domain.MarkerKey]int64
	profile string
	err     error
}

func (m *inMemoryMarkers) ReadMarker(_ context.Context, key domain.MarkerKey) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	value, ok := m.values[key]
	if !ok {
		return 0, domain.ErrEntityNotFound
	}
	return value, nil
}

func (m *inMemoryMarkers) WriteMarker(_ context.Context, key domain.MarkerKey, epoch int64) error {
	if m.err != nil {
		return m.err
	}
	if m.values == nil {
		m.values = map[domain.MarkerKey]int64{}
	}
	m.values[key] = epoch
	return nil
}

func (m *inMemoryMarkers) ReadProfile(_ context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.profile == "" {
		return "", domain.ErrEntityNotFound
	}
	return m.profile, nil
}

func (m *inMemoryMarkers) WriteProfile(_ context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	m.profile = name
	return nil
}

type inMemoryBank struct {
	docs map[domain.DocumentName]string
	err  error
}

func (b *inMemoryBank) Read(_ context.Context, doc domain.DocumentName) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	content, ok := b.docs[doc]
	if !ok {
		return "", domain.ErrEntityNotFound
	}
	return content, nil
}

func (b *inMemoryBank) Append(_ context.Context, doc domain.DocumentName, block string) error {
	if b.err != nil {
		return b.err
	}
	content, ok := b.docs[doc]
	if !ok {
		return domain.ErrEntityNotFound
	}
	b.docs[doc] = content + block
	return nil
}

type staticMapCache struct {
	modTime time.Time
}

func (c staticMapCache) ModTime(_ context.Context) (time.Time, error) {
	if c.modTime.IsZero() {
		return time.Time{}, domain.ErrEntityNotFound
	}
	return c.modTime, nil
}

type recordedAudit struct {
	stream domain.AuditStream
	entry  domain.AuditEntry
}

type inMemoryAudit struct {
	records []recordedAudit
	err     error
}

func (a *inMemoryAudit) Record(_ context.Context, stream domain.AuditStream, entry domain.AuditEntry) error {
	if a.err != nil {
		return a.err
	}
	a.records = append(a.records, recordedAudit{stream: stream, entry: entry})
	return nil
}

type stubVCS struct {
	branch     string
	changes    int
	err        error
	branchHits int
	statusHits int
}

func (v *stubVCS) CurrentBranch(_ context.Context) (string, error) {
	v.branchHits++
	if v.err != nil {
		return "", v.err
	}
	return v.branch, nil
}

func (v *stubVCS) UncommittedChanges(_ context.Context) (int, error) {
	v.statusHits++
	if v.err != nil {
		return 0, v.err
	}
	return v.changes, nil
}

var errDiskFull = errors.New("no space left on device")

type harness struct {
	activity *inMemoryActivity
	markers  *inMemoryMarkers
	bank     *inMemoryBank
	audit    *inMemoryAudit
	vcs      *stubVCS
	now      time.Time
	ids      int
}

func newHarness(now time.Time) *harness {
	return &harness{
		activity: &inMemoryActivity{},
		markers:  &inMemoryMarkers{},
		bank:     &inMemoryBank{docs: map[domain.DocumentName]string{}},
		audit:    &inMemoryAudit{},
		vcs:      &stubVCS{},
		now:      now,
	}
}

func (h *harness) service(mapModTime time.Time) *HookService {
	return NewHookService(Dependencies{
		Activity: h.activity,
		Markers:  h.markers,
		Bank:     h.bank,
		MapCache: staticMapCache{modTime: mapModTime},
		Audit:    h.audit,
		VCS:      h.vcs,
		Clock:    fixedClock{now: h.now},
		NewID: func() string {
			h.ids++
			return fmt.Sprintf("inv-%d", h.ids)
		},
	})
}

func (h *harness) setOps(n int) {
	if h.activity.days == nil {
		h.activity.days = map[string]int{}
	}
	h.activity.days[h.now.Format("2006-01-02")] = n
}
