package systems

import "time"

// Throttle lets an action through only when strictly more than Interval has
// passed since it last did.
type Throttle struct {
	Interval time.Duration
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{Interval: interval}
}

// Allow reports whether the action may run at now and, if so, records it.
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) <= t.Interval {
		return false
	}
	t.last = now
	return true
}
