package physics

import (
	"math"

	"github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/gamemath"
	"github.com/Olle-svg/ponggamebyolle/tags"
	"github.com/solarlune/resolv"
)

// Side identifies a paddle in the rectangular arena. The host always plays
// the left side online.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// RectState is the authoritative state of a two-paddle match.
type RectState struct {
	Ball    Ball
	Paddles [2]float64 // Top Y of each paddle, indexed by Side
	Scores  [2]int
	Over    bool
	Winner  Side
}

// RectResult reports what happened during one Step.
type RectResult struct {
	PaddleHit  bool
	WallBounce bool
	Scored     bool
	Scorer     Side
	GameOver   bool
}

// RectArena is the classic two-paddle court. Paddles live in a resolv space
// for the broad phase; the narrow phase is an exact AABB test.
type RectArena struct {
	Width, Height float64

	cfg     config.RectConfig
	space   *resolv.Space
	paddles [2]*resolv.Object
	ball    *resolv.Object
}

// contactPad grows the broad-phase ball box so resolv also reports a ball
// resting exactly on a paddle face; overlaps makes the exact call.
const contactPad = 1.0

// NewRectArena builds a court of the given pixel size.
func NewRectArena(width, height float64, cfg config.RectConfig) *RectArena {
	a := &RectArena{Width: width, Height: height, cfg: cfg}

	cell := int(math.Max(cfg.BallSize, 8))
	a.space = resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cell, cell)

	center := a.CenterPaddleY()
	a.paddles[SideLeft] = resolv.NewObject(a.PaddleX(SideLeft), center, cfg.PaddleWidth, cfg.PaddleHeight,
		tags.ResolvPaddle, tags.ResolvLeft)
	a.paddles[SideRight] = resolv.NewObject(a.PaddleX(SideRight), center, cfg.PaddleWidth, cfg.PaddleHeight,
		tags.ResolvPaddle, tags.ResolvRight)
	size := cfg.BallSize + 2*contactPad
	a.ball = resolv.NewObject(width/2-size/2, height/2-size/2, size, size, tags.ResolvBall)

	a.space.Add(a.paddles[SideLeft], a.paddles[SideRight], a.ball)
	return a
}

// Config returns the tuning the arena was built with.
func (a *RectArena) Config() config.RectConfig { return a.cfg }

// PaddleX is the left edge of the paddle on side s.
func (a *RectArena) PaddleX(s Side) float64 {
	if s == SideLeft {
		return a.cfg.PaddleInset
	}
	return a.Width - a.cfg.PaddleInset - a.cfg.PaddleWidth
}

// CenterPaddleY is the top Y of a vertically centred paddle.
func (a *RectArena) CenterPaddleY() float64 {
	return a.Height/2 - a.cfg.PaddleHeight/2
}

// ClampPaddle keeps a paddle top inside [0, H - paddle height].
func (a *RectArena) ClampPaddle(y float64) float64 {
	return gamemath.Clamp(y, 0, a.Height-a.cfg.PaddleHeight)
}

// MovePaddle moves a paddle by dir (-1 up, +1 down) at paddle speed.
func (a *RectArena) MovePaddle(y, dir float64) float64 {
	return a.ClampPaddle(y + dir*a.cfg.PaddleSpeed)
}

func (a *RectArena) center() gamemath.Vec2 {
	return gamemath.V(a.Width/2, a.Height/2)
}

// NewState returns a fresh match with centred paddles and a served ball.
func (a *RectArena) NewState(rng Rand) RectState {
	s := RectState{}
	s.Paddles[SideLeft] = a.CenterPaddleY()
	s.Paddles[SideRight] = a.CenterPaddleY()
	a.Serve(&s.Ball, rng)
	return s
}

// Serve resets the ball to the centre at the initial speed.
func (a *RectArena) Serve(b *Ball, rng Rand) {
	ServeRect(b, a.center(), a.cfg.InitialBallSpeed, rng)
}

// ResolveWalls bounces the ball off the top and bottom walls.
func (a *RectArena) ResolveWalls(b *Ball) bool {
	half := a.cfg.BallSize / 2
	if b.Y > half && b.Y < a.Height-half {
		return false
	}
	b.VY = -b.VY
	b.Y = gamemath.Clamp(b.Y, half, a.Height-half)
	return true
}

// ResolvePaddle bounces the ball off the paddle on side s whose top is at
// paddleY. Only a ball moving toward that paddle can hit it.
func (a *RectArena) ResolvePaddle(b *Ball, s Side, paddleY float64) bool {
	approaching := (s == SideLeft && b.VX < 0) || (s == SideRight && b.VX > 0)
	if !approaching {
		return false
	}

	paddle := a.paddles[s]
	paddle.X = a.PaddleX(s)
	paddle.Y = paddleY
	paddle.Update()

	half := a.cfg.BallSize / 2
	a.ball.X = b.X - half - contactPad
	a.ball.Y = b.Y - half - contactPad
	a.ball.Update()

	check := a.ball.Check(0, 0, sideTag(s))
	if check == nil {
		return false
	}
	hit := false
	for _, o := range check.ObjectsByTags(tags.ResolvPaddle) {
		if o == paddle && a.overlaps(b, o) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	hitPos := (b.Y-paddleY)/a.cfg.PaddleHeight - 0.5
	dir := 1.0
	faceX := paddle.X + paddle.W + half
	if s == SideRight {
		dir = -1
		faceX = paddle.X - half
	}
	v := gamemath.V(dir*math.Abs(b.VX)*a.cfg.SpeedUp, hitPos*a.cfg.Deflection)
	b.Speed = math.Min(b.Speed*a.cfg.SpeedUp, a.cfg.MaxBallSpeed)
	b.setVel(v.WithLen(b.Speed))
	b.X = faceX
	return true
}

// overlaps is the exact test: the ball box overlaps the paddle horizontally
// and the ball centre lies within the paddle's vertical span.
func (a *RectArena) overlaps(b *Ball, p *resolv.Object) bool {
	half := a.cfg.BallSize / 2
	return b.X-half <= p.X+p.W &&
		b.X+half >= p.X &&
		b.Y >= p.Y &&
		b.Y <= p.Y+p.H
}

func sideTag(s Side) string {
	if s == SideLeft {
		return tags.ResolvLeft
	}
	return tags.ResolvRight
}

// ResolveScoring awards a point when the ball leaves through a side wall.
// At the win score the match ends and the ball is left where it is;
// otherwise the ball is re-served.
func (a *RectArena) ResolveScoring(st *RectState, rng Rand) RectResult {
	var res RectResult
	switch {
	case st.Ball.X < 0:
		res.Scorer = SideRight
	case st.Ball.X > a.Width:
		res.Scorer = SideLeft
	default:
		return res
	}

	res.Scored = true
	st.Scores[res.Scorer]++
	if st.Scores[res.Scorer] >= a.cfg.WinScore {
		st.Over = true
		st.Winner = res.Scorer
		res.GameOver = true
		return res
	}
	a.Serve(&st.Ball, rng)
	return res
}

// Step advances one frame of ball physics. Paddles are moved by their
// owners before Step is called. A finished match is not advanced.
func (a *RectArena) Step(st *RectState, rng Rand) RectResult {
	if st.Over {
		return RectResult{}
	}

	st.Ball.Advance()

	var res RectResult
	res.WallBounce = a.ResolveWalls(&st.Ball)
	if a.ResolvePaddle(&st.Ball, SideLeft, st.Paddles[SideLeft]) ||
		a.ResolvePaddle(&st.Ball, SideRight, st.Paddles[SideRight]) {
		res.PaddleHit = true
	}

	score := a.ResolveScoring(st, rng)
	score.PaddleHit = res.PaddleHit
	score.WallBounce = res.WallBounce
	return score
}
