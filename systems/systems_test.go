package systems

import (
	"testing"
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func frame(n int) time.Time {
	return t0.Add(time.Duration(n) * 16 * time.Millisecond)
}

func TestThrottleIsStrict(t *testing.T) {
	th := NewThrottle(50 * time.Millisecond)

	assert.True(t, th.Allow(t0), "first call always passes")
	assert.False(t, th.Allow(t0.Add(20*time.Millisecond)))
	assert.False(t, th.Allow(t0.Add(50*time.Millisecond)), "exactly the interval is not enough")
	assert.True(t, th.Allow(t0.Add(51*time.Millisecond)))
}

func TestSamplerEdges(t *testing.T) {
	keys := fakeKeys{}
	s := NewSampler(keys)

	keys[cfg.ActionPause] = true
	in := s.Sample()
	assert.True(t, in.JustPressed(cfg.ActionPause))

	in = s.Sample()
	assert.True(t, in.Pressed(cfg.ActionPause))
	assert.False(t, in.JustPressed(cfg.ActionPause), "held key is not a new press")

	keys[cfg.ActionPause] = false
	in = s.Sample()
	assert.False(t, in.Pressed(cfg.ActionPause))
}

func TestInputAxis(t *testing.T) {
	assert.Equal(t, -1.0, held(cfg.ActionPrimaryUp).PaddleAxis())
	assert.Equal(t, 1.0, held(cfg.ActionSecondaryDown).PaddleAxis())
	assert.Equal(t, 0.0, held(cfg.ActionPrimaryUp, cfg.ActionPrimaryDown).Axis(cfg.ActionPrimaryUp, cfg.ActionPrimaryDown))
	assert.Equal(t, 1.0, held(cfg.ActionRingForward).Axis(cfg.ActionRingBackward, cfg.ActionRingForward))
	assert.Equal(t, 0.0, InputState{}.PaddleAxis())
}

type countingController struct {
	updates int
	paused  []bool
}

func (c *countingController) Update(time.Time, InputState) { c.updates++ }
func (c *countingController) View() View                   { return View{} }

type pausingController struct {
	countingController
}

func (c *pausingController) SetPaused(p bool) { c.paused = append(c.paused, p) }

func TestDriverPauseToggle(t *testing.T) {
	keys := fakeKeys{}
	ctrl := &pausingController{}
	d := NewDriver(NewSampler(keys), ctrl)

	d.Tick(frame(0))
	assert.Equal(t, 1, ctrl.updates)

	keys[cfg.ActionPause] = true
	d.Tick(frame(1))
	d.Tick(frame(2))
	assert.False(t, d.Playing())
	assert.Equal(t, []bool{true}, ctrl.paused, "holding pause toggles once")
	assert.Equal(t, 1, ctrl.updates)

	keys[cfg.ActionPause] = false
	d.Tick(frame(3))
	keys[cfg.ActionPause] = true
	d.Tick(frame(4))
	assert.True(t, d.Playing())
	assert.Equal(t, []bool{true, false}, ctrl.paused)
	assert.Equal(t, 2, ctrl.updates, "paused frames are not replayed")
}

func TestDriverIgnoresPauseWithoutPauser(t *testing.T) {
	keys := fakeKeys{cfg.ActionPause: true}
	ctrl := &countingController{}
	d := NewDriver(NewSampler(keys), ctrl)

	d.Tick(frame(0))
	assert.True(t, d.Playing())
	assert.Equal(t, 1, ctrl.updates)
}

func TestDriverStop(t *testing.T) {
	ctrl := &countingController{}
	d := NewDriver(NewSampler(fakeKeys{}), ctrl)

	d.Tick(frame(0))
	d.Stop()
	d.Tick(frame(1))
	assert.True(t, d.Stopped())
	assert.False(t, d.Playing())
	assert.Equal(t, 1, ctrl.updates)
}

func TestNewControllerPicksImplementation(t *testing.T) {
	p := &fakeParty{id: "host", snap: party.New("id", "ABCDE", "host", 4)}
	w := &fakeWriter{}
	base := Setup{Width: 800, Height: 500, Party: p, Out: w, Rand: &seqRand{vals: []float64{0.3}}}

	cases := []struct {
		mode Mode
		host bool
		want Controller
	}{
		{ModeSingle, false, &LocalController{}},
		{ModeLocal, false, &LocalController{}},
		{ModeOnline, true, &HostRectController{}},
		{ModeOnline, false, &GuestRectController{}},
		{ModeBattleRoyale, true, &HostPolyController{}},
		{ModeBattleRoyale, false, &GuestPolyController{}},
	}
	for _, tc := range cases {
		s := base
		s.Mode, s.Host = tc.mode, tc.host
		c, err := NewController(s)
		require.NoError(t, err, tc.mode.String())
		assert.IsType(t, tc.want, c, tc.mode.String())
	}

	_, err := NewController(Setup{Mode: ModeOnline, Width: 800, Height: 500})
	assert.Error(t, err, "online play needs a party")

	_, err = NewController(Setup{Mode: ModeLocal})
	assert.Error(t, err, "zero arena")

	_, err = NewController(Setup{Mode: Mode(42), Width: 800, Height: 500})
	assert.Error(t, err)
}

// losingServe sends every serve toward the left paddle but below it, so the
// right side scores every rally while nobody moves.
func losingServe() *seqRand {
	return &seqRand{vals: []float64{0.2, 0.95}}
}

func TestLocalMatchRunsToGameOver(t *testing.T) {
	rec := &recorder{}
	c := NewLocalController(Setup{
		Mode: ModeLocal, Width: 800, Height: 500,
		Rand: losingServe(), Hooks: rec.hooks(),
	})

	for i := 0; i < 2000 && !c.View().Over; i++ {
		c.Update(frame(i), InputState{})
	}

	v := c.View()
	require.True(t, v.Over)
	assert.Equal(t, party.StatusFinished, v.Status)
	assert.Equal(t, "P2", v.Winner)
	assert.False(t, v.Won)
	assert.Equal(t, [2]int{0, cfg.Rect.WinScore}, v.Rect.Scores)
	assert.Len(t, rec.scores, cfg.Rect.WinScore)
	assert.Equal(t, []bool{false}, rec.results)
	assert.Equal(t, []string{"P2"}, rec.winners)

	c.Update(frame(3000), InputState{})
	assert.Len(t, rec.results, 1, "game over is reported once")
}

func TestLocalPausedFreezesBall(t *testing.T) {
	c := NewLocalController(Setup{Mode: ModeSingle, Width: 800, Height: 500, Rand: losingServe()})
	c.SetPaused(true)

	before := c.View().Rect.Ball
	c.Update(frame(1), held(cfg.ActionPrimaryDown))
	v := c.View()
	assert.Equal(t, before, v.Rect.Ball)
	assert.Equal(t, party.StatusPaused, v.Status)
	assert.Equal(t, [2]string{"YOU", "CPU"}, v.Rect.Labels)

	c.SetPaused(false)
	c.Update(frame(2), held(cfg.ActionPrimaryDown))
	v = c.View()
	assert.NotEqual(t, before, v.Rect.Ball)
	assert.Greater(t, v.Rect.Paddles[0], c.arena.CenterPaddleY())
}

func TestLocalTwoPlayerKeySets(t *testing.T) {
	c := NewLocalController(Setup{Mode: ModeLocal, Width: 800, Height: 500, Rand: losingServe()})
	center := c.arena.CenterPaddleY()

	c.Update(frame(0), held(cfg.ActionPrimaryUp, cfg.ActionSecondaryDown))
	p := c.View().Rect.Paddles
	assert.Equal(t, center-cfg.Rect.PaddleSpeed, p[0])
	assert.Equal(t, center+cfg.Rect.PaddleSpeed, p[1])
}
