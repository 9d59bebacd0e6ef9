// Package tracking keeps the locally observed device usage, the
// server-of-record usage and the quota state in agreement.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SlowDown/quota"
	"SlowDown/timeutil"
	"SlowDown/usagestats"

	"github.com/rs/zerolog"
)

// ErrPermissionRequired is returned when the usage-stats permission is not
// granted. The caller should prompt for it; this is not the same as a day
// with zero usage.
var ErrPermissionRequired = errors.New("usage access permission not granted")

// ErrInvalidDelta is returned for a non-positive measured delta.
var ErrInvalidDelta = errors.New("usage delta must be positive")

// Backend pushes merged usage to the server of record. Both calls are
// best-effort from the tracker's point of view.
type Backend interface {
	// SyncUsage resyncs today's cumulative reading (monotonic max merge
	// server-side).
	SyncUsage(ctx context.Context, dateKey string, reading usagestats.Reading) error

	// AddUsage adds a measured delta for one app (additive merge
	// server-side). Never use it to re-send a cumulative total: mixing the
	// two merge modes double-counts.
	AddUsage(ctx context.Context, appLabel string, minutes float64) error
}

// Tracker reconciles device-reported usage with the backend and exposes the
// current quota state. All allowance inputs are injected explicitly; the
// tracker holds no ambient auth or app state.
type Tracker struct {
	source      usagestats.Source
	backend     Backend
	log         zerolog.Logger
	offsetHours int
	now         func() time.Time

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	dateKey  string
	used     float64
	appUsage map[string]float64

	limit      int
	bonus      int
	blocked    bool
	hasPending bool
}

// New builds a tracker. The allowance defaults to a 30-minute limit until
// SetAllowance is called with server data.
func New(source usagestats.Source, backend Backend, offsetHours int, log zerolog.Logger) *Tracker {
	t := &Tracker{
		source:      source,
		backend:     backend,
		log:         log.With().Str("component", "tracker").Logger(),
		offsetHours: offsetHours,
		now:         time.Now,
		limit:       30,
		appUsage:    map[string]float64{},
	}
	t.dateKey = timeutil.DateKey(t.now(), offsetHours)
	return t
}

// SetAllowance updates the quota inputs that come from the server (the user
// record and the pending-request flag).
func (t *Tracker) SetAllowance(dailyLimit, bonus int, blocked, hasPending bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limit = dailyLimit
	t.bonus = bonus
	t.blocked = blocked
	t.hasPending = hasPending
}

// Refresh queries the device and reconciles. The local quota state always
// updates from the device read; the backend push is best-effort and a
// failure there is logged, not returned. Responses are sequence-tagged so a
// slow query finishing after a newer one cannot overwrite fresher state.
func (t *Tracker) Refresh(ctx context.Context) (quota.Status, error) {
	granted, err := t.source.HasPermission()
	if err != nil {
		return quota.Status{}, fmt.Errorf("check usage permission: %w", err)
	}
	if !granted {
		return quota.Status{}, ErrPermissionRequired
	}

	t.mu.Lock()
	t.rollDayLocked()
	queryKey := t.dateKey
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	reading, err := t.source.QueryToday()
	if err != nil {
		return quota.Status{}, fmt.Errorf("query today usage: %w", err)
	}

	t.mu.Lock()
	t.rollDayLocked()
	if t.dateKey != queryKey {
		// Midnight passed while the query was in flight, so the reading
		// belongs to the finished day. The new day starts at zero; the
		// next tick reads it fresh.
		st := t.statusLocked()
		t.mu.Unlock()
		return st, nil
	}
	if seq < t.applied {
		// A newer read already landed; last completed fetch wins.
		st := t.statusLocked()
		t.mu.Unlock()
		return st, nil
	}
	t.applied = seq
	if reading.TotalMinutes > t.used {
		t.used = reading.TotalMinutes
	}
	t.appUsage = normalizeApps(reading.AppUsage)
	dateKey := t.dateKey
	st := t.statusLocked()
	t.mu.Unlock()

	if err := t.backend.SyncUsage(ctx, dateKey, reading); err != nil {
		t.log.Warn().Err(err).Str("date", dateKey).Msg("usage sync failed, will retry on next tick")
	}
	return st, nil
}

// AddDelta records a measured session delta for one app: added locally and
// pushed with the additive merge, never the resync one.
func (t *Tracker) AddDelta(ctx context.Context, appLabel string, minutes float64) (quota.Status, error) {
	if minutes <= 0 {
		return quota.Status{}, ErrInvalidDelta
	}

	t.mu.Lock()
	t.rollDayLocked()
	t.used += minutes
	if t.appUsage == nil {
		t.appUsage = map[string]float64{}
	}
	t.appUsage[appLabel] += minutes
	st := t.statusLocked()
	t.mu.Unlock()

	if err := t.backend.AddUsage(ctx, appLabel, minutes); err != nil {
		t.log.Warn().Err(err).Str("app", appLabel).Msg("usage add failed, will retry on next tick")
	}
	return st, nil
}

// RequestPermission opens the OS settings screen for usage access.
func (t *Tracker) RequestPermission() error {
	return t.source.RequestPermission()
}

// Snapshot returns the current quota state without touching the device or
// the backend.
func (t *Tracker) Snapshot() quota.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollDayLocked()
	return t.statusLocked()
}

// CanRequestTime reports whether a new time request may be submitted right
// now.
func (t *Tracker) CanRequestTime() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollDayLocked()
	return t.statusLocked().CanRequestTime(t.hasPending)
}

// AppUsage returns a copy of today's per-app minutes.
func (t *Tracker) AppUsage() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64, len(t.appUsage))
	for k, v := range t.appUsage {
		out[k] = v
	}
	return out
}

// rollDayLocked restarts the per-day counters when the date key has moved
// past midnight in the app timezone. Allowance fields are left alone: bonus
// minutes and admin blocks survive the daily reset.
func (t *Tracker) rollDayLocked() {
	nowKey := timeutil.DateKey(t.now(), t.offsetHours)
	if !timeutil.NeedsReset(t.dateKey, nowKey) {
		return
	}
	t.log.Info().Str("from", t.dateKey).Str("to", nowKey).Msg("daily reset")
	t.dateKey = nowKey
	t.used = 0
	t.appUsage = map[string]float64{}
}

func (t *Tracker) statusLocked() quota.Status {
	return quota.Compute(quota.Inputs{
		DailyLimitMinutes: t.limit,
		BonusMinutes:      t.bonus,
		TodayUsedMinutes:  t.used,
		IsBlocked:         t.blocked,
	})
}

// normalizeApps copies a device map, clamps negatives and seeds the tracked
// apps with zero so displays always have a row per app.
func normalizeApps(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in)+len(usagestats.SocialApps))
	for _, app := range usagestats.SocialApps {
		out[app.Name] = 0
	}
	for k, v := range in {
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}
