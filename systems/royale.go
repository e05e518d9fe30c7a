package systems

import (
	"math"
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/physics"
	"github.com/decred/slog"
)

// roster mirrors the battle royale participants of the party record in join
// order. The local paddle is only ever moved by local input.
type roster struct {
	self    string
	players []*physics.Participant
	byID    map[string]*physics.Participant
}

func newRoster(self string) *roster {
	return &roster{self: self, byID: make(map[string]*physics.Participant)}
}

// sync folds a snapshot in and returns the ids it newly eliminated. Players
// that vanished from the record count as eliminated.
func (r *roster) sync(snap party.Party) []string {
	listed := make(map[string]bool, len(snap.PlayerIDs))
	for i, id := range snap.PlayerIDs {
		listed[id] = true
		p, ok := r.byID[id]
		if !ok {
			p = &physics.Participant{ID: id, Name: id, Slot: i, Paddle: snap.PlayerPositions[id]}
			r.byID[id] = p
			r.players = append(r.players, p)
			continue
		}
		if id != r.self {
			p.Paddle = snap.PlayerPositions[id]
		}
	}

	var out []string
	for _, p := range r.players {
		if p.Eliminated {
			continue
		}
		if !listed[p.ID] || snap.IsEliminated(p.ID) {
			p.Eliminated = true
			out = append(out, p.ID)
		}
	}
	return out
}

func (r *roster) me() *physics.Participant {
	return r.byID[r.self]
}

// views lays the participants out on the arena: edge i belongs to the i-th
// active participant.
func (r *roster) views() []PolyPlayer {
	out := make([]PolyPlayer, 0, len(r.players))
	edge := 0
	for _, p := range r.players {
		v := PolyPlayer{ID: p.ID, Slot: p.Slot, Edge: -1, Paddle: p.Paddle, Eliminated: p.Eliminated, Self: p.ID == r.self}
		if !p.Eliminated {
			v.Edge = edge
			edge++
		}
		out = append(out, v)
	}
	return out
}

func moveRingPaddle(arena *physics.PolyArena, p *physics.Participant, in InputState) {
	if p == nil || p.Eliminated {
		return
	}
	p.Paddle = arena.MovePaddle(p.Paddle, in.Axis(cfg.ActionRingBackward, cfg.ActionRingForward))
}

// HostPolyController runs the battle royale physics on the host: it detects
// misses, eliminates the participant who missed and ends the match when one
// is left.
type HostPolyController struct {
	width, height float64
	pcfg          cfg.PolyConfig

	roster *roster
	state  physics.PolyState
	arena  *physics.PolyArena

	party    PartyReader
	out      PartyWriter
	rng      physics.Rand
	hooks    Hooks
	log      slog.Logger
	status   party.Status
	paused   bool
	reported bool

	paddleThrottle *Throttle
	ballThrottle   *Throttle
}

func NewHostPolyController(s Setup) *HostPolyController {
	s = s.withDefaults()
	c := &HostPolyController{
		width:          s.Width,
		height:         s.Height,
		pcfg:           cfg.Poly,
		roster:         newRoster(s.Party.PlayerID()),
		party:          s.Party,
		out:            s.Out,
		rng:            s.Rand,
		hooks:          s.Hooks,
		log:            s.Log,
		paddleThrottle: NewThrottle(cfg.Net.PaddleInterval),
		ballThrottle:   NewThrottle(cfg.Net.BallInterval),
	}
	snap, _ := s.Party.Snapshot()
	c.status = snap.Status
	c.roster.sync(snap)
	c.state.Participants = c.roster.players
	c.arena = c.rebuild()
	c.arena.Serve(&c.state.Ball, c.rng)
	return c
}

func (c *HostPolyController) rebuild() *physics.PolyArena {
	return physics.NewPolyArena(c.width, c.height, len(physics.Active(c.state.Participants)), c.pcfg)
}

func (c *HostPolyController) Update(now time.Time, in InputState) {
	snap, _ := c.party.Snapshot()
	c.status = snap.Status

	for _, id := range c.roster.sync(snap) {
		c.log.Debugf("Participant %s left the match", id)
		c.hooks.eliminated(id)
	}
	c.state.Participants = c.roster.players
	c.arena = c.rebuild()

	me := c.roster.me()
	if !c.state.Over {
		moveRingPaddle(c.arena, me, in)
	}
	if me != nil && c.paddleThrottle.Allow(now) {
		c.out.Paddle(me.Paddle)
	}

	if !c.state.Over && !c.paused && snap.Status == party.StatusPlaying {
		c.step(now)
	}
	c.settle()
}

func (c *HostPolyController) step(now time.Time) {
	arena, res := physics.Step(&c.state, c.width, c.height, c.pcfg, c.rng)
	c.arena = arena

	fb := c.hooks.feedback()
	if res.PaddleHit {
		fb.PaddleHit()
	}
	if res.WallBounce {
		fb.WallBounce()
	}

	if res.Eliminated != "" {
		c.log.Infof("Eliminated %s", res.Eliminated)
		c.out.Eliminate(res.Eliminated)
		c.hooks.eliminated(res.Eliminated)
	}
	if c.ballThrottle.Allow(now) {
		c.out.Ball(ballSnapshot(c.state.Ball, c.width, c.height))
	}
}

// settle ends the match once one participant is left, whether by a miss or
// because the others quit, and reports it once.
func (c *HostPolyController) settle() {
	if !c.state.Over {
		active := physics.Active(c.state.Participants)
		if len(c.state.Participants) < 2 || len(active) > 1 {
			return
		}
		c.state.Over = true
		if len(active) == 1 {
			c.state.Winner = active[0].ID
		}
	}
	if c.reported {
		return
	}
	c.reported = true
	c.status = party.StatusFinished
	c.out.Status(party.StatusFinished)
	c.hooks.gameOver(c.state.Winner, c.state.Winner == c.roster.self)
}

func (c *HostPolyController) SetPaused(paused bool) {
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

func (c *HostPolyController) View() View {
	v := View{
		Mode:   ModeBattleRoyale,
		Status: c.status,
		Over:   c.state.Over,
		Poly: &PolyView{
			Arena:   c.arena,
			Ball:    c.state.Ball,
			Players: c.roster.views(),
		},
	}
	if c.paused && !c.state.Over {
		v.Status = party.StatusPaused
	}
	if c.state.Over {
		v.Status = party.StatusFinished
		v.Winner = c.state.Winner
		v.Won = c.state.Winner == c.roster.self
	}
	return v
}

// GuestPolyController renders a battle royale from the host's snapshots and
// publishes only the local paddle.
type GuestPolyController struct {
	width, height float64
	pcfg          cfg.PolyConfig

	roster *roster
	arena  *physics.PolyArena
	party  PartyReader
	out    PartyWriter
	hooks  Hooks
	smooth *ballSmoother

	ball   physics.Ball
	status party.Status
	over   bool
	winner string

	version  uint64
	prevBall party.BallSnapshot
	seenBall bool
	serving  bool

	paddleThrottle *Throttle
}

func NewGuestPolyController(s Setup) *GuestPolyController {
	c := &GuestPolyController{
		width:          s.Width,
		height:         s.Height,
		pcfg:           cfg.Poly,
		roster:         newRoster(s.Party.PlayerID()),
		party:          s.Party,
		out:            s.Out,
		hooks:          s.Hooks,
		smooth:         newBallSmoother(s.Smooth, cfg.Net.SmoothDuration),
		paddleThrottle: NewThrottle(cfg.Net.PaddleInterval),
	}
	snap, version := s.Party.Snapshot()
	c.roster.sync(snap)
	c.version = version
	c.absorbBall(snap, false)
	c.arena = c.rebuild()
	return c
}

func (c *GuestPolyController) rebuild() *physics.PolyArena {
	return physics.NewPolyArena(c.width, c.height, len(physics.Active(c.roster.players)), c.pcfg)
}

func (c *GuestPolyController) Update(now time.Time, in InputState) {
	snap, version := c.party.Snapshot()
	c.status = snap.Status

	if version != c.version {
		c.version = version
		gone := c.roster.sync(snap)
		for _, id := range gone {
			c.hooks.eliminated(id)
		}
		c.absorbBall(snap, len(gone) > 0)
	}
	c.arena = c.rebuild()

	me := c.roster.me()
	if !c.over {
		moveRingPaddle(c.arena, me, in)
	}
	if me != nil && c.paddleThrottle.Allow(now) {
		c.out.Paddle(me.Paddle)
	}

	if snap.Status == party.StatusFinished && !c.over {
		c.over = true
		if active := physics.Active(c.roster.players); len(active) == 1 {
			c.winner = active[0].ID
		}
		c.hooks.gameOver(c.winner, c.winner == c.roster.self)
	}
	c.ball.X, c.ball.Y = c.smooth.Step(now)
}

// absorbBall takes the ball of a snapshot. The first velocity change after
// an elimination is the re-serve; any other is a bounce: paddles speed the
// ball up, bare walls do not.
func (c *GuestPolyController) absorbBall(snap party.Party, eliminated bool) {
	ball := party.BallSnapshot{X: snap.BallX, Y: snap.BallY, DX: snap.BallDX, DY: snap.BallDY}
	if eliminated {
		c.serving = true
	}
	if c.seenBall && (ball.DX != c.prevBall.DX || ball.DY != c.prevBall.DY) {
		before := math.Hypot(c.prevBall.DX, c.prevBall.DY)
		after := math.Hypot(ball.DX, ball.DY)
		switch {
		case c.serving:
			c.serving = false
		case after > before+1e-9:
			c.hooks.feedback().PaddleHit()
		default:
			c.hooks.feedback().WallBounce()
		}
	}
	c.prevBall = ball
	c.seenBall = true

	c.smooth.Target(party.FromPercent(ball.X, c.width), party.FromPercent(ball.Y, c.height))
	c.ball.VX, c.ball.VY = ball.DX, ball.DY
	c.ball.Speed = math.Hypot(ball.DX, ball.DY)
}

func (c *GuestPolyController) View() View {
	return View{
		Mode:   ModeBattleRoyale,
		Status: c.status,
		Over:   c.over,
		Won:    c.over && c.winner == c.roster.self,
		Winner: c.winner,
		Poly: &PolyView{
			Arena:   c.arena,
			Ball:    c.ball,
			Players: c.roster.views(),
		},
	}
}
