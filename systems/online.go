package systems

import (
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/physics"
	"github.com/decred/slog"
)

var onlineLabels = [2]string{"HOST", "GUEST"}

func ballSnapshot(b physics.Ball, width, height float64) party.BallSnapshot {
	return party.BallSnapshot{
		X:  party.ToPercent(b.X, width),
		Y:  party.ToPercent(b.Y, height),
		DX: b.VX,
		DY: b.VY,
	}
}

// HostRectController runs the physics of an online 1v1 on the host. The host
// plays the left paddle; the guest paddle comes from the party record.
type HostRectController struct {
	arena  *physics.RectArena
	state  physics.RectState
	party  PartyReader
	out    PartyWriter
	rng    physics.Rand
	hooks  Hooks
	log    slog.Logger
	status party.Status
	paused bool

	paddleThrottle *Throttle
	ballThrottle   *Throttle
}

func NewHostRectController(s Setup) *HostRectController {
	s = s.withDefaults()
	c := &HostRectController{
		arena:          physics.NewRectArena(s.Width, s.Height, cfg.Rect),
		party:          s.Party,
		out:            s.Out,
		rng:            s.Rand,
		hooks:          s.Hooks,
		log:            s.Log,
		paddleThrottle: NewThrottle(cfg.Net.PaddleInterval),
		ballThrottle:   NewThrottle(cfg.Net.BallInterval),
	}
	c.state = c.arena.NewState(c.rng)
	return c
}

func (c *HostRectController) Update(now time.Time, in InputState) {
	snap, _ := c.party.Snapshot()
	c.status = snap.Status

	st := &c.state
	st.Paddles[physics.SideRight] = c.arena.ClampPaddle(
		party.PaddleFromPercent(snap.GuestPaddleY, c.arena.Height, c.arena.CenterPaddleY()))
	if !st.Over {
		st.Paddles[physics.SideLeft] = c.arena.MovePaddle(st.Paddles[physics.SideLeft], in.PaddleAxis())
	}
	if c.paddleThrottle.Allow(now) {
		c.out.Paddle(party.ToPercent(st.Paddles[physics.SideLeft], c.arena.Height))
	}

	if st.Over || c.paused || snap.Status != party.StatusPlaying {
		return
	}

	res := c.arena.Step(st, c.rng)
	reportRect(c.hooks, st, res, onlineLabels, func(s physics.Side) bool { return s == physics.SideLeft })

	if res.Scored {
		c.out.Score(st.Scores[physics.SideLeft], st.Scores[physics.SideRight])
		c.log.Debugf("Score %d:%d", st.Scores[physics.SideLeft], st.Scores[physics.SideRight])
	}
	if res.GameOver {
		c.out.Status(party.StatusFinished)
		c.status = party.StatusFinished
	}
	// A serve waits for the next slot like any other ball write; the score
	// is already queued ahead of it.
	if c.ballThrottle.Allow(now) {
		c.out.Ball(ballSnapshot(st.Ball, c.arena.Width, c.arena.Height))
	}
}

// SetPaused pauses the match for both participants.
func (c *HostRectController) SetPaused(paused bool) {
	if c.state.Over || c.paused == paused {
		return
	}
	c.paused = paused
	if paused {
		c.out.Status(party.StatusPaused)
		return
	}
	c.out.Status(party.StatusPlaying)
}

func (c *HostRectController) View() View {
	v := View{
		Mode:   ModeOnline,
		Status: c.status,
		Over:   c.state.Over,
		Rect: &RectView{
			Arena:   c.arena,
			Ball:    c.state.Ball,
			Paddles: c.state.Paddles,
			Scores:  c.state.Scores,
			Labels:  onlineLabels,
		},
	}
	if c.paused && !c.state.Over {
		v.Status = party.StatusPaused
	}
	if c.state.Over {
		v.Status = party.StatusFinished
		v.Winner = onlineLabels[c.state.Winner]
		v.Won = c.state.Winner == physics.SideLeft
	}
	return v
}

// GuestRectController renders an online 1v1 from the host's snapshots and
// publishes only the guest paddle, which is the right one.
type GuestRectController struct {
	arena  *physics.RectArena
	party  PartyReader
	out    PartyWriter
	hooks  Hooks
	smooth *ballSmoother

	paddle     float64
	hostPaddle float64
	ball       physics.Ball
	scores     [2]int
	status     party.Status
	over       bool
	won        bool

	version  uint64
	prevBall party.BallSnapshot
	seenBall bool
	serving  bool

	paddleThrottle *Throttle
}

func NewGuestRectController(s Setup) *GuestRectController {
	arena := physics.NewRectArena(s.Width, s.Height, cfg.Rect)
	return &GuestRectController{
		arena:          arena,
		party:          s.Party,
		out:            s.Out,
		hooks:          s.Hooks,
		smooth:         newBallSmoother(s.Smooth, cfg.Net.SmoothDuration),
		paddle:         arena.CenterPaddleY(),
		hostPaddle:     arena.CenterPaddleY(),
		paddleThrottle: NewThrottle(cfg.Net.PaddleInterval),
	}
}

func (c *GuestRectController) Update(now time.Time, in InputState) {
	snap, version := c.party.Snapshot()
	c.status = snap.Status

	if !c.over {
		c.paddle = c.arena.MovePaddle(c.paddle, in.PaddleAxis())
	}
	if c.paddleThrottle.Allow(now) {
		c.out.Paddle(party.ToPercent(c.paddle, c.arena.Height))
	}
	c.hostPaddle = c.arena.ClampPaddle(
		party.PaddleFromPercent(snap.HostPaddleY, c.arena.Height, c.arena.CenterPaddleY()))

	if version != c.version {
		c.version = version
		c.absorb(snap)
	}
	c.ball.X, c.ball.Y = c.smooth.Step(now)
}

// absorb takes in a new snapshot: ball target, scores and game over.
func (c *GuestRectController) absorb(snap party.Party) {
	ball := party.BallSnapshot{X: snap.BallX, Y: snap.BallY, DX: snap.BallDX, DY: snap.BallDY}
	scores := [2]int{snap.HostScore, snap.GuestScore}
	scored := scores != c.scores
	if scored {
		c.serving = true
	}

	// The first ball change after a point is the serve, not a bounce.
	if c.seenBall && ball != c.prevBall {
		switch {
		case c.serving:
			c.serving = false
		case flipped(c.prevBall.DX, ball.DX):
			c.hooks.feedback().PaddleHit()
		case flipped(c.prevBall.DY, ball.DY):
			c.hooks.feedback().WallBounce()
		}
	}
	c.prevBall = ball
	c.seenBall = true

	c.smooth.Target(party.FromPercent(ball.X, c.arena.Width), party.FromPercent(ball.Y, c.arena.Height))
	c.ball.VX, c.ball.VY = ball.DX, ball.DY

	if scored {
		c.scores = scores
		c.hooks.score(scores[0], scores[1])
	}
	if snap.Status == party.StatusFinished && !c.over {
		c.over = true
		c.won = snap.GuestScore > snap.HostScore
		winner := onlineLabels[physics.SideLeft]
		if c.won {
			winner = onlineLabels[physics.SideRight]
		}
		c.hooks.gameOver(winner, c.won)
	}
}

func flipped(before, after float64) bool {
	return before*after < 0
}

func (c *GuestRectController) View() View {
	v := View{
		Mode:   ModeOnline,
		Status: c.status,
		Over:   c.over,
		Won:    c.won,
		Rect: &RectView{
			Arena:   c.arena,
			Ball:    c.ball,
			Paddles: [2]float64{c.hostPaddle, c.paddle},
			Scores:  c.scores,
			Labels:  onlineLabels,
		},
	}
	if c.over {
		v.Winner = onlineLabels[physics.SideLeft]
		if c.won {
			v.Winner = onlineLabels[physics.SideRight]
		}
	}
	return v
}
