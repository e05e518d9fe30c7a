package systems

import (
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
)

// Driver feeds sampled input to a controller once per frame. Paused frames
// are skipped, not replayed later.
type Driver struct {
	sampler    *Sampler
	controller Controller
	playing    bool
	stopped    bool
	last       InputState
}

func NewDriver(sampler *Sampler, controller Controller) *Driver {
	return &Driver{sampler: sampler, controller: controller, playing: true}
}

// Tick runs one frame at now. The pause action toggles playing when the
// controller supports pausing.
func (d *Driver) Tick(now time.Time) {
	if d.stopped {
		return
	}
	in := d.sampler.Sample()
	d.last = in
	if in.JustPressed(cfg.ActionPause) {
		if p, ok := d.controller.(Pauser); ok {
			d.playing = !d.playing
			p.SetPaused(!d.playing)
		}
	}
	if !d.playing {
		return
	}
	d.controller.Update(now, in)
}

// SetPlaying resumes or suspends ticking without touching the controller.
func (d *Driver) SetPlaying(playing bool) {
	d.playing = playing
}

func (d *Driver) Playing() bool {
	return d.playing && !d.stopped
}

// Stop ends the driver for good; later ticks do nothing.
func (d *Driver) Stop() {
	d.stopped = true
}

func (d *Driver) Stopped() bool {
	return d.stopped
}

// Input returns what the last tick sampled, so the scene can react to keys
// the controller ignores.
func (d *Driver) Input() InputState {
	return d.last
}

func (d *Driver) View() View {
	return d.controller.View()
}
