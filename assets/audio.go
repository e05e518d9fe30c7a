package assets

import (
	"encoding/binary"
	"math"
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// decayFloor is the level a tone decays to by the end of its duration.
const decayFloor = 0.01

// oscillator generates a single periodic wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     cfg.Wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave cfg.Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case cfg.WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream exponentially from full level to decayFloor.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: max(rate.N(duration), 1)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Pow(decayFloor, float64(d.position)/float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// toneStreamer builds one delayed, decaying, gain-scaled note.
func toneStreamer(t cfg.Tone, rate beep.SampleRate, master float64) beep.Streamer {
	var s beep.Streamer = newDecay(newOscillator(t.Freq, t.Duration, t.Wave, rate), t.Duration, rate)
	s = &effects.Gain{Streamer: s, Gain: t.Gain*master - 1}
	if t.Delay > 0 {
		s = beep.Seq(beep.Silence(rate.N(t.Delay)), s)
	}
	return s
}

// RenderTones mixes a recipe into 16-bit little endian stereo PCM, the
// format ebiten's audio players read.
func RenderTones(tones []cfg.Tone, sampleRate int, master float64) []byte {
	if len(tones) == 0 {
		return nil
	}
	rate := beep.SampleRate(sampleRate)

	var total time.Duration
	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		streams = append(streams, toneStreamer(t, rate, master))
		total = max(total, t.Delay+t.Duration)
	}
	mixed := beep.Take(rate.N(total), beep.Mix(streams...))

	out := make([]byte, 0, rate.N(total)*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := mixed.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				out = binary.LittleEndian.AppendUint16(out, uint16(s))
			}
		}
		if !ok {
			return out
		}
	}
}

// ToneBank renders every configured sound once and hands out the PCM.
type ToneBank struct {
	pcm map[cfg.SoundID][]byte
}

// NewToneBank renders all recipes of config.Sound at sampleRate.
func NewToneBank(sampleRate int) *ToneBank {
	b := &ToneBank{pcm: make(map[cfg.SoundID][]byte, len(cfg.Sound.Recipes))}
	for id, recipe := range cfg.Sound.Recipes {
		b.pcm[id] = RenderTones(recipe, sampleRate, cfg.Audio.MasterGain)
	}
	return b
}

// PCM returns the rendered bytes of a sound, or nil if it has no recipe.
func (b *ToneBank) PCM(id cfg.SoundID) []byte {
	return b.pcm[id]
}
