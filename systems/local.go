package systems

import (
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/physics"
)

// LocalController runs a whole match on this machine: the left paddle is the
// player, the right one is the AI or a second player on the same keyboard.
type LocalController struct {
	mode   Mode
	arena  *physics.RectArena
	state  physics.RectState
	ai     *physics.AI
	rng    physics.Rand
	hooks  Hooks
	labels [2]string
	paused bool
}

func NewLocalController(s Setup) *LocalController {
	s = s.withDefaults()
	c := &LocalController{
		mode:   s.Mode,
		arena:  physics.NewRectArena(s.Width, s.Height, cfg.Rect),
		rng:    s.Rand,
		hooks:  s.Hooks,
		labels: [2]string{"P1", "P2"},
	}
	if s.Mode == ModeSingle {
		c.ai = physics.NewAI(s.Difficulty)
		c.labels = [2]string{"YOU", "CPU"}
	}
	c.state = c.arena.NewState(c.rng)
	return c
}

func (c *LocalController) Update(_ time.Time, in InputState) {
	if c.state.Over || c.paused {
		return
	}

	st := &c.state
	if c.ai != nil {
		st.Paddles[physics.SideLeft] = c.arena.MovePaddle(st.Paddles[physics.SideLeft], in.PaddleAxis())
		st.Paddles[physics.SideRight] = c.ai.Update(c.arena, st.Paddles[physics.SideRight], st.Ball)
	} else {
		st.Paddles[physics.SideLeft] = c.arena.MovePaddle(st.Paddles[physics.SideLeft],
			in.Axis(cfg.ActionPrimaryUp, cfg.ActionPrimaryDown))
		st.Paddles[physics.SideRight] = c.arena.MovePaddle(st.Paddles[physics.SideRight],
			in.Axis(cfg.ActionSecondaryUp, cfg.ActionSecondaryDown))
	}

	res := c.arena.Step(st, c.rng)
	reportRect(c.hooks, st, res, c.labels, func(s physics.Side) bool { return s == physics.SideLeft })
}

func (c *LocalController) SetPaused(paused bool) {
	c.paused = paused
}

func (c *LocalController) View() View {
	status := party.StatusPlaying
	switch {
	case c.state.Over:
		status = party.StatusFinished
	case c.paused:
		status = party.StatusPaused
	}
	v := View{
		Mode:   c.mode,
		Status: status,
		Over:   c.state.Over,
		Rect: &RectView{
			Arena:   c.arena,
			Ball:    c.state.Ball,
			Paddles: c.state.Paddles,
			Scores:  c.state.Scores,
			Labels:  c.labels,
		},
	}
	if c.state.Over {
		v.Winner = c.labels[c.state.Winner]
		v.Won = c.state.Winner == physics.SideLeft
	}
	return v
}
