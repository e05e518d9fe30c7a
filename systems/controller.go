package systems

import (
	"fmt"
	"math/rand/v2"
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/physics"
	"github.com/decred/slog"
)

// Mode selects how a match is played.
type Mode int

const (
	ModeSingle Mode = iota // One player against the AI
	ModeLocal              // Two players on one keyboard
	ModeOnline             // 1v1 through a party
	ModeBattleRoyale
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeLocal:
		return "local"
	case ModeOnline:
		return "online"
	case ModeBattleRoyale:
		return "battle royale"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// PartyReader is the read side of a party session.
type PartyReader interface {
	PlayerID() string
	Snapshot() (party.Party, uint64)
}

// PartyWriter publishes gameplay fields without blocking the frame.
type PartyWriter interface {
	Paddle(pos float64)
	Ball(b party.BallSnapshot)
	Score(host, guest int)
	Status(s party.Status)
	Eliminate(playerID string)
}

// Hooks connect a controller to the UI and audio. Nil members are skipped.
type Hooks struct {
	Feedback     Feedback
	OnScore      func(left, right int)
	OnEliminated func(playerID string)
	OnGameOver   func(winner string, won bool)
}

func (h Hooks) feedback() Feedback {
	if h.Feedback == nil {
		return NopFeedback{}
	}
	return h.Feedback
}

func (h Hooks) score(left, right int) {
	h.feedback().Score()
	if h.OnScore != nil {
		h.OnScore(left, right)
	}
}

func (h Hooks) eliminated(id string) {
	h.feedback().Score()
	if h.OnEliminated != nil {
		h.OnEliminated(id)
	}
}

func (h Hooks) gameOver(winner string, won bool) {
	h.feedback().GameOver(won)
	if h.OnGameOver != nil {
		h.OnGameOver(winner, won)
	}
}

// RectView is a drawable two-paddle frame.
type RectView struct {
	Arena   *physics.RectArena
	Ball    physics.Ball
	Paddles [2]float64
	Scores  [2]int
	Labels  [2]string
}

// PolyPlayer is one participant as drawn. Edge is -1 once eliminated.
type PolyPlayer struct {
	ID         string
	Slot       int
	Edge       int
	Paddle     float64
	Eliminated bool
	Self       bool
}

// PolyView is a drawable battle royale frame.
type PolyView struct {
	Arena   *physics.PolyArena
	Ball    physics.Ball
	Players []PolyPlayer
}

// View is everything a scene needs to draw the current frame.
type View struct {
	Mode   Mode
	Rect   *RectView
	Poly   *PolyView
	Status party.Status
	Over   bool
	Won    bool
	Winner string
}

// Controller advances one participant's side of a match per frame.
type Controller interface {
	Update(now time.Time, in InputState)
	View() View
}

// Pauser is implemented by controllers whose owner may pause the match.
type Pauser interface {
	SetPaused(paused bool)
}

// Setup selects and configures the controller of a match.
type Setup struct {
	Mode          Mode
	Width, Height float64
	Difficulty    cfg.BotDifficulty

	// Online modes only.
	Party  PartyReader
	Out    PartyWriter
	Host   bool
	Smooth bool

	Rand  physics.Rand
	Hooks Hooks
	Log   slog.Logger
}

func (s Setup) withDefaults() Setup {
	if s.Rand == nil {
		s.Rand = globalRand{}
	}
	if s.Log == nil {
		s.Log = slog.Disabled
	}
	return s
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// NewController picks the implementation for the mode and role once, at
// match setup.
func NewController(s Setup) (Controller, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid arena size %vx%v", s.Width, s.Height)
	}

	switch s.Mode {
	case ModeSingle, ModeLocal:
		return NewLocalController(s), nil
	case ModeOnline, ModeBattleRoyale:
		if s.Party == nil || s.Out == nil {
			return nil, fmt.Errorf("%s needs a party", s.Mode)
		}
	default:
		return nil, fmt.Errorf("unknown mode %d", int(s.Mode))
	}

	switch {
	case s.Mode == ModeOnline && s.Host:
		return NewHostRectController(s), nil
	case s.Mode == ModeOnline:
		return NewGuestRectController(s), nil
	case s.Host:
		return NewHostPolyController(s), nil
	default:
		return NewGuestPolyController(s), nil
	}
}

// reportRect forwards one rect step's events to the hooks. won tells whether
// the local player won when the match ends.
func reportRect(h Hooks, st *physics.RectState, res physics.RectResult, labels [2]string, won func(physics.Side) bool) {
	fb := h.feedback()
	if res.PaddleHit {
		fb.PaddleHit()
	}
	if res.WallBounce {
		fb.WallBounce()
	}
	if res.Scored {
		h.score(st.Scores[physics.SideLeft], st.Scores[physics.SideRight])
	}
	if res.GameOver {
		h.gameOver(labels[res.Scorer], won(res.Scorer))
	}
}
