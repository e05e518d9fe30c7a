package systems

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ballSmoother shows the guest ball. Disabled, it jumps to each snapshot;
// enabled, it eases from the shown position to the newest snapshot over a
// fixed duration. The host stays authoritative either way.
type ballSmoother struct {
	enabled  bool
	duration time.Duration

	x, y   float64
	tx, ty *gween.Tween
	last   time.Time
	placed bool
}

func newBallSmoother(enabled bool, duration time.Duration) *ballSmoother {
	return &ballSmoother{enabled: enabled, duration: duration}
}

// Target is called when a new snapshot arrives.
func (s *ballSmoother) Target(x, y float64) {
	if !s.enabled || !s.placed || s.duration <= 0 {
		s.x, s.y = x, y
		s.tx, s.ty = nil, nil
		s.placed = true
		return
	}
	d := float32(s.duration.Seconds())
	s.tx = gween.New(float32(s.x), float32(x), d, ease.Linear)
	s.ty = gween.New(float32(s.y), float32(y), d, ease.Linear)
}

// Step advances any running tween to now and returns the shown position.
func (s *ballSmoother) Step(now time.Time) (float64, float64) {
	var dt float32
	if !s.last.IsZero() {
		dt = float32(now.Sub(s.last).Seconds())
	}
	s.last = now

	if s.tx != nil {
		x, doneX := s.tx.Update(dt)
		y, doneY := s.ty.Update(dt)
		s.x, s.y = float64(x), float64(y)
		if doneX && doneY {
			s.tx, s.ty = nil, nil
		}
	}
	return s.x, s.y
}
