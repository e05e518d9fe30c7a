package physics

import (
	"math"

	"github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/gamemath"
)

// Participant is one player of a battle royale match.
type Participant struct {
	ID         string
	Name       string
	Slot       int     // Join order; decides the colour
	Paddle     float64 // Position along the owned edge in [-1, 1]
	Eliminated bool
}

// Active returns the non-eliminated participants in slot order. Edge i of the
// arena belongs to Active()[i].
func Active(ps []*Participant) []*Participant {
	out := make([]*Participant, 0, len(ps))
	for _, p := range ps {
		if !p.Eliminated {
			out = append(out, p)
		}
	}
	return out
}

// SlotAngle is the angular slot of participant index i among n, in degrees.
func SlotAngle(i, n int) float64 {
	if n == 0 {
		return 0
	}
	return 360 / float64(n) * float64(i)
}

// PolyResult reports what happened during one ResolveEdges call.
type PolyResult struct {
	PaddleHit  bool
	WallBounce bool
	Eliminated string // ID of the participant who missed, if any
}

// PolyArena is the regular polygon court of a battle royale. It is rebuilt
// whenever the number of active participants changes.
type PolyArena struct {
	Center gamemath.Vec2
	Radius float64
	Verts  []gamemath.Vec2
	Edges  []gamemath.Edge

	cfg config.PolyConfig
}

// Sides returns the side count for n active participants.
func Sides(active int, cfg config.PolyConfig) int {
	return max(active, cfg.MinSides)
}

// NewPolyArena builds the polygon for an area of width x height with one edge
// per active participant and never fewer than three edges.
func NewPolyArena(width, height float64, active int, cfg config.PolyConfig) *PolyArena {
	center := gamemath.V(width/2, height/2)
	radius := math.Min(width, height)/2 - cfg.Margin
	verts := gamemath.RegularPolygon(center, radius, Sides(active, cfg))
	return &PolyArena{
		Center: center,
		Radius: radius,
		Verts:  verts,
		Edges:  gamemath.Edges(verts),
		cfg:    cfg,
	}
}

// Config returns the tuning the arena was built with.
func (a *PolyArena) Config() config.PolyConfig { return a.cfg }

// Serve resets the ball to the arena centre in a random direction.
func (a *PolyArena) Serve(b *Ball, rng Rand) {
	ServeRadial(b, a.Center, a.cfg.InitialBallSpeed, rng)
}

// MovePaddle moves a normalised paddle position by dir steps.
func (a *PolyArena) MovePaddle(pos, dir float64) float64 {
	return gamemath.Clamp(pos+dir*a.cfg.PaddleStep, -1, 1)
}

// PaddleSpan returns the parameter range [start, end] the paddle covers on
// edge e, clipped to the edge.
func (a *PolyArena) PaddleSpan(e gamemath.Edge, pos float64) (float64, float64) {
	t := (pos + 1) / 2
	half := 0.0
	if e.Length > 0 {
		half = a.cfg.PaddleLength / e.Length / 2
	}
	return math.Max(0, t-half), math.Min(1, t+half)
}

// ResolveEdges tests the ball against every edge. owners[i] owns edge i; a nil
// owner makes that edge a plain wall. A covered hit reflects the ball and
// speeds it up; an uncovered hit on a live owner's edge eliminates that owner
// and re-serves. At most one elimination happens per call.
func (a *PolyArena) ResolveEdges(b *Ball, owners []*Participant, rng Rand) PolyResult {
	var res PolyResult
	half := a.cfg.BallSize / 2

	for i, e := range a.Edges {
		pos := b.Pos()
		d := e.Distance(pos)
		if d >= half || d <= -a.cfg.HitBand {
			continue
		}
		t := e.Project(pos)
		if t < 0 || t > 1 {
			continue
		}

		var owner *Participant
		if i < len(owners) {
			owner = owners[i]
		}

		if owner == nil {
			if b.Vel().Dot(e.Normal) < 0 {
				b.setVel(b.Vel().Reflect(e.Normal))
				b.X += e.Normal.X * a.cfg.Nudge
				b.Y += e.Normal.Y * a.cfg.Nudge
				res.WallBounce = true
			}
			continue
		}

		start, end := a.PaddleSpan(e, owner.Paddle)
		if t >= start && t <= end {
			if b.Vel().Dot(e.Normal) >= 0 {
				continue
			}
			b.setVel(b.Vel().Reflect(e.Normal))
			b.SpeedUp(a.cfg.SpeedUp, a.cfg.MaxBallSpeed)
			b.X += e.Normal.X * a.cfg.Nudge
			b.Y += e.Normal.Y * a.cfg.Nudge
			res.PaddleHit = true
			continue
		}

		if !owner.Eliminated {
			res.Eliminated = owner.ID
			a.Serve(b, rng)
			return res
		}
	}
	return res
}

// PolyState is the authoritative state of a battle royale match.
type PolyState struct {
	Ball         Ball
	Participants []*Participant
	Over         bool
	Winner       string
}

// Step advances one frame: it rebuilds the arena for the current active
// count, moves the ball and resolves edges. An elimination is applied to the
// state immediately; the match ends when one participant remains.
func Step(st *PolyState, width, height float64, cfg config.PolyConfig, rng Rand) (*PolyArena, PolyResult) {
	active := Active(st.Participants)
	arena := NewPolyArena(width, height, len(active), cfg)
	if st.Over {
		return arena, PolyResult{}
	}

	st.Ball.Advance()
	res := arena.ResolveEdges(&st.Ball, active, rng)
	if res.Eliminated == "" {
		return arena, res
	}

	for _, p := range st.Participants {
		if p.ID == res.Eliminated {
			p.Eliminated = true
		}
	}
	if remaining := Active(st.Participants); len(remaining) <= 1 {
		st.Over = true
		if len(remaining) == 1 {
			st.Winner = remaining[0].ID
		}
	}
	return NewPolyArena(width, height, len(Active(st.Participants)), cfg), res
}
