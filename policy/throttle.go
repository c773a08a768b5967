package policy

import "time"

// LunchBreakThrottle rejects every request to the posts API surface during
// a fixed daily window, regardless of identity. The window is inclusive of
// both hours, so the default 13..14 blocks 13:00 through 14:59 local time.
// The rule has no documented rationale upstream, so the bounds stay
// configurable rather than hardcoded.
type LunchBreakThrottle struct {
	StartHour int
	EndHour   int
	Enabled   bool

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

// NewLunchBreakThrottle builds an enabled throttle for the given inclusive
// hour window.
func NewLunchBreakThrottle(startHour, endHour int) *LunchBreakThrottle {
	return &LunchBreakThrottle{
		StartHour: startHour,
		EndHour:   endHour,
		Enabled:   true,
	}
}

// Allow reports whether a request arriving now may proceed.
func (t *LunchBreakThrottle) Allow() bool {
	if t == nil || !t.Enabled {
		return true
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	hour := now().Hour()
	return hour < t.StartHour || hour > t.EndHour
}
