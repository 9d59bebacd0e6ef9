// Package quota decides whether a user's daily allowance is exhausted.
// It is a pure computation over explicit inputs; callers own all I/O.
package quota

// Inputs are the four values the engine depends on. Negative values are
// invalid upstream and get clamped to zero here so a bad write can never
// produce a negative allowance.
type Inputs struct {
	DailyLimitMinutes int
	BonusMinutes      int
	TodayUsedMinutes  float64
	IsBlocked         bool
}

// Status is the derived quota state for a single point in time.
type Status struct {
	TotalAllowedMinutes int     `json:"totalAllowedMinutes"`
	UsedMinutes         float64 `json:"usedMinutes"`
	RemainingMinutes    float64 `json:"remainingMinutes"`
	IsTimeUp            bool    `json:"isTimeUp"`
	AdminBlocked        bool    `json:"adminBlocked"`
	EffectiveBlock      bool    `json:"effectiveBlock"`
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Compute derives the quota state. Comparisons use the raw fractional used
// minutes; display rounding is the caller's concern.
func Compute(in Inputs) Status {
	limit := clampInt(in.DailyLimitMinutes)
	bonus := clampInt(in.BonusMinutes)
	used := clampFloat(in.TodayUsedMinutes)

	allowed := limit + bonus
	remaining := float64(allowed) - used
	if remaining < 0 {
		remaining = 0
	}
	timeUp := used >= float64(allowed)

	return Status{
		TotalAllowedMinutes: allowed,
		UsedMinutes:         used,
		RemainingMinutes:    remaining,
		IsTimeUp:            timeUp,
		AdminBlocked:        in.IsBlocked,
		EffectiveBlock:      in.IsBlocked || timeUp,
	}
}

// CanRequestTime reports whether the user may submit a new time request:
// out of time, not admin-blocked, and no request already pending.
func (s Status) CanRequestTime(hasPendingRequest bool) bool {
	return s.IsTimeUp && !s.AdminBlocked && !hasPendingRequest
}
