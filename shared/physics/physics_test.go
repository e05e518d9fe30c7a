package physics

import (
	"math"
	"testing"

	"github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newRect() *RectArena {
	return NewRectArena(800, 500, config.Rect)
}

func TestRectPaddleBounceRestoresSpeed(t *testing.T) {
	arena := newRect()
	cfg := arena.Config()
	paddleY := 200.0

	b := Ball{X: arena.PaddleX(SideLeft) + cfg.PaddleWidth + 2, Y: paddleY + 80, VX: -6, VY: 1, Speed: 6}
	require.True(t, arena.ResolvePaddle(&b, SideLeft, paddleY))

	assert.InDelta(t, 6*cfg.SpeedUp, b.Speed, 1e-9)
	assert.InDelta(t, b.Speed, b.Magnitude(), 1e-9)
	assert.Greater(t, b.VX, 0.0)
	assert.Greater(t, b.VY, 0.0, "lower half of the paddle deflects downward")
	assert.InDelta(t, arena.PaddleX(SideLeft)+cfg.PaddleWidth+cfg.BallSize/2, b.X, 1e-9)
}

func TestRectPaddleHitsBallTouchingFace(t *testing.T) {
	arena := newRect()
	cfg := arena.Config()
	paddleY := 200.0
	half := cfg.BallSize / 2

	left := Ball{X: arena.PaddleX(SideLeft) + cfg.PaddleWidth + half, Y: paddleY + 10, VX: -6, Speed: 6}
	assert.True(t, arena.ResolvePaddle(&left, SideLeft, paddleY))
	assert.Greater(t, left.VX, 0.0)

	right := Ball{X: arena.PaddleX(SideRight) - half, Y: paddleY + 90, VX: 6, Speed: 6}
	assert.True(t, arena.ResolvePaddle(&right, SideRight, paddleY))
	assert.Less(t, right.VX, 0.0)

	gap := Ball{X: arena.PaddleX(SideLeft) + cfg.PaddleWidth + half + 1, Y: paddleY + 10, VX: -6, Speed: 6}
	assert.False(t, arena.ResolvePaddle(&gap, SideLeft, paddleY), "a ball a pixel away is not a hit")
}

func TestRectSpeedNeverExceedsMax(t *testing.T) {
	arena := newRect()
	cfg := arena.Config()
	paddleY := 200.0
	b := Ball{VX: 6, VY: 0, Speed: cfg.InitialBallSpeed}

	prev := b.Speed
	for i := 0; i < 40; i++ {
		side := SideRight
		if b.VX < 0 {
			side = SideLeft
		}
		b.Y = paddleY + cfg.PaddleHeight/2
		if side == SideLeft {
			b.X = arena.PaddleX(SideLeft) + cfg.PaddleWidth
		} else {
			b.X = arena.PaddleX(SideRight)
		}
		require.True(t, arena.ResolvePaddle(&b, side, paddleY), "bounce %d", i)
		assert.GreaterOrEqual(t, b.Speed, prev)
		assert.LessOrEqual(t, b.Speed, cfg.MaxBallSpeed)
		assert.InDelta(t, b.Speed, b.Magnitude(), 1e-9)
		prev = b.Speed
	}
	assert.Equal(t, cfg.MaxBallSpeed, b.Speed)
}

func TestRectPaddleIgnoresRecedingOrMissingBall(t *testing.T) {
	arena := newRect()
	cfg := arena.Config()
	paddleY := 200.0
	x := arena.PaddleX(SideLeft) + cfg.PaddleWidth

	receding := Ball{X: x, Y: paddleY + 50, VX: 6, Speed: 6}
	assert.False(t, arena.ResolvePaddle(&receding, SideLeft, paddleY))

	above := Ball{X: x, Y: paddleY - 1, VX: -6, Speed: 6}
	assert.False(t, arena.ResolvePaddle(&above, SideLeft, paddleY))

	behind := Ball{X: arena.PaddleX(SideLeft) - cfg.BallSize, Y: paddleY + 50, VX: -6, Speed: 6}
	assert.False(t, arena.ResolvePaddle(&behind, SideLeft, paddleY))
}

func TestRectWalls(t *testing.T) {
	arena := newRect()
	half := arena.Config().BallSize / 2

	b := Ball{X: 400, Y: 2, VX: 3, VY: -4, Speed: 5}
	assert.True(t, arena.ResolveWalls(&b))
	assert.Equal(t, 4.0, b.VY)
	assert.Equal(t, half, b.Y)

	b = Ball{X: 400, Y: 600, VX: 3, VY: 4, Speed: 5}
	assert.True(t, arena.ResolveWalls(&b))
	assert.Equal(t, -4.0, b.VY)
	assert.Equal(t, arena.Height-half, b.Y)

	b = Ball{X: 400, Y: 250, VX: 3, VY: 4, Speed: 5}
	assert.False(t, arena.ResolveWalls(&b))
}

func TestServeResetsBall(t *testing.T) {
	arena := newRect()
	st := arena.NewState(&seqRand{vals: []float64{0.9, 0.8}})
	first := st.Ball

	assert.Equal(t, 400.0, first.X)
	assert.Equal(t, 250.0, first.Y)
	assert.Equal(t, config.Rect.InitialBallSpeed, first.Speed)
	assert.InDelta(t, first.Speed, first.Magnitude(), 1e-9)
	assert.Greater(t, first.VX, 0.0)

	st.Ball = Ball{X: -5, Y: 10, VX: -11, VY: 3, Speed: 11}
	res := arena.ResolveScoring(&st, &seqRand{vals: []float64{0.1, 0.2}})
	require.True(t, res.Scored)
	assert.Equal(t, SideRight, res.Scorer)
	assert.Equal(t, 1, st.Scores[SideRight])
	assert.Equal(t, 400.0, st.Ball.X)
	assert.Equal(t, 250.0, st.Ball.Y)
	assert.Equal(t, config.Rect.InitialBallSpeed, st.Ball.Speed)
	assert.Less(t, st.Ball.VX, 0.0)
	assert.NotEqual(t, first.Vel().Normalize(), st.Ball.Vel().Normalize())

	var radial Ball
	ServeRadial(&radial, gamemath.V(300, 300), 4, &seqRand{vals: []float64{0.25}})
	assert.InDelta(t, 0, radial.VX, 1e-9)
	assert.InDelta(t, 4, radial.VY, 1e-9)
}

func TestWinScoreEndsMatchOnce(t *testing.T) {
	arena := newRect()
	rng := &seqRand{vals: []float64{0.7, 0.4}}
	st := arena.NewState(rng)

	overs := 0
	for i := 0; i < 10; i++ {
		st.Ball.X = arena.Width + 1
		st.Ball.VX = 6
		res := arena.Step(&st, rng)
		if res.GameOver {
			overs++
		}
	}

	assert.Equal(t, 1, overs)
	assert.True(t, st.Over)
	assert.Equal(t, SideLeft, st.Winner)
	assert.Equal(t, config.Rect.WinScore, st.Scores[SideLeft])
	assert.Equal(t, 0, st.Scores[SideRight])
}

func TestAITracksApproachingBall(t *testing.T) {
	arena := newRect()
	ai := NewAI(config.BotDifficultyNormal)
	speed := arena.Config().PaddleSpeed * ai.Tuning.SpeedFactor

	y := 0.0
	next := ai.Update(arena, y, Ball{Y: 400, VX: 5})
	assert.InDelta(t, y+speed, next, 1e-9)

	// Within the deadband the paddle holds still.
	y = 200
	next = ai.Update(arena, y, Ball{Y: y + arena.Config().PaddleHeight/2 + 10, VX: 5})
	assert.Equal(t, y, next)

	// Receding ball: drift home at reduced speed.
	y = 0
	next = ai.Update(arena, y, Ball{Y: 0, VX: -5})
	assert.InDelta(t, speed*ai.Tuning.ReturnFactor, next, 1e-9)

	// Close enough to home: no jitter.
	assert.Equal(t, arena.CenterPaddleY()+5, ai.Update(arena, arena.CenterPaddleY()+5, Ball{VX: -5}))
}

func TestPolySidesFollowActiveCount(t *testing.T) {
	for active, want := range map[int]int{0: 3, 1: 3, 2: 3, 3: 3, 4: 4, 5: 5} {
		arena := NewPolyArena(600, 600, active, config.Poly)
		assert.Len(t, arena.Edges, want, "active=%d", active)
		assert.InDelta(t, 300-config.Poly.Margin, arena.Radius, 1e-9)
	}
}

// ballAt places a ball just inside edge e at parameter t, heading outward.
func ballAt(e gamemath.Edge, t, dist, speed float64) Ball {
	p := e.PointAt(t).Add(e.Normal.Scale(dist))
	v := e.Normal.Scale(-speed)
	return Ball{X: p.X, Y: p.Y, VX: v.X, VY: v.Y, Speed: speed}
}

func TestPolyPaddleBounce(t *testing.T) {
	arena := NewPolyArena(600, 600, 3, config.Poly)
	owners := []*Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	e := arena.Edges[0]

	b := ballAt(e, 0.5, 2, 4)
	res := arena.ResolveEdges(&b, owners, &seqRand{vals: []float64{0.5}})

	require.True(t, res.PaddleHit)
	assert.Empty(t, res.Eliminated)
	assert.InDelta(t, 4*config.Poly.SpeedUp, b.Speed, 1e-9)
	assert.InDelta(t, b.Speed, b.Magnitude(), 1e-9)
	assert.Greater(t, b.Vel().Dot(e.Normal), 0.0)
	assert.InDelta(t, 2+config.Poly.Nudge, e.Distance(b.Pos()), 1e-9)
}

func TestPolyMissEliminatesOwner(t *testing.T) {
	arena := NewPolyArena(600, 600, 3, config.Poly)
	owners := []*Participant{{ID: "a", Paddle: -1}, {ID: "b"}, {ID: "c"}}
	e := arena.Edges[0]

	b := ballAt(e, 0.9, 2, 7)
	res := arena.ResolveEdges(&b, owners, &seqRand{vals: []float64{0.5}})

	assert.Equal(t, "a", res.Eliminated)
	assert.Equal(t, arena.Center, b.Pos())
	assert.Equal(t, config.Poly.InitialBallSpeed, b.Speed)
	assert.InDelta(t, b.Speed, b.Magnitude(), 1e-9)
}

func TestPolyUnownedEdgeIsWall(t *testing.T) {
	arena := NewPolyArena(600, 600, 2, config.Poly)
	owners := Active([]*Participant{{ID: "a"}, {ID: "b"}})
	e := arena.Edges[2]

	b := ballAt(e, 0.1, 2, 5)
	res := arena.ResolveEdges(&b, owners, &seqRand{vals: []float64{0.5}})

	assert.True(t, res.WallBounce)
	assert.Empty(t, res.Eliminated)
	assert.InDelta(t, 5, b.Speed, 1e-9)
	assert.Greater(t, b.Vel().Dot(e.Normal), 0.0)
}

func TestBattleRoyaleEndsWithOneSurvivor(t *testing.T) {
	st := &PolyState{Participants: []*Participant{
		{ID: "p1", Slot: 0}, {ID: "p2", Slot: 1}, {ID: "p3", Slot: 2}, {ID: "p4", Slot: 3},
	}}
	rng := &seqRand{vals: []float64{0.3}}
	speed := 4.0

	eliminated := []string{}
	for round := 0; round < 3; round++ {
		active := Active(st.Participants)
		arena := NewPolyArena(600, 600, len(active), config.Poly)
		active[0].Paddle = -1
		// After Advance the ball sits 1px inside the uncovered end of edge 0.
		st.Ball = ballAt(arena.Edges[0], 0.9, 1+speed, speed)

		_, res := Step(st, 600, 600, config.Poly, rng)
		require.NotEmpty(t, res.Eliminated, "round %d", round)
		eliminated = append(eliminated, res.Eliminated)
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, eliminated)
	assert.True(t, st.Over)
	assert.Equal(t, "p4", st.Winner)
	assert.Len(t, Active(st.Participants), 1)

	_, res := Step(st, 600, 600, config.Poly, rng)
	assert.Equal(t, PolyResult{}, res)
}

func TestPaddleSpanClipsToEdge(t *testing.T) {
	arena := NewPolyArena(600, 600, 3, config.Poly)
	e := arena.Edges[0]
	start, end := arena.PaddleSpan(e, 1)
	assert.Less(t, start, 1.0)
	assert.Equal(t, 1.0, end)

	start, end = arena.PaddleSpan(e, 0)
	assert.InDelta(t, 0.5-config.Poly.PaddleLength/e.Length/2, start, 1e-9)
	assert.InDelta(t, 0.5+config.Poly.PaddleLength/e.Length/2, end, 1e-9)
	assert.False(t, math.IsNaN(start))
}
