package config

import "time"

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	SoundPaddleHit
	SoundWallBounce
	SoundScore
	SoundWin
	SoundLose
)

// Wave selects the oscillator shape of a tone.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// Tone is one oscillator note inside a sound effect.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64
	Delay    time.Duration // Offset from the start of the effect
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	MasterGain    float64
	DefaultSFXVol float64
}

// SoundConfig maps sound IDs to their synthesis recipe
type SoundConfig struct {
	Recipes map[SoundID][]Tone
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		MasterGain:    0.4,
		DefaultSFXVol: 1.0,
	}

	ms := time.Millisecond
	Sound = SoundConfig{
		Recipes: map[SoundID][]Tone{
			SoundPaddleHit: {
				{Freq: 480, Duration: 70 * ms, Wave: WaveSquare, Gain: 0.5},
			},
			SoundWallBounce: {
				{Freq: 280, Duration: 60 * ms, Wave: WaveSine, Gain: 0.35},
			},
			SoundScore: {
				{Freq: 523, Duration: 120 * ms, Wave: WaveSine, Gain: 0.5},
				{Freq: 659, Duration: 120 * ms, Wave: WaveSine, Gain: 0.5, Delay: 100 * ms},
				{Freq: 784, Duration: 200 * ms, Wave: WaveSine, Gain: 0.5, Delay: 200 * ms},
			},
			SoundWin: {
				{Freq: 523, Duration: 150 * ms, Wave: WaveSine, Gain: 0.5},
				{Freq: 659, Duration: 150 * ms, Wave: WaveSine, Gain: 0.5, Delay: 150 * ms},
				{Freq: 784, Duration: 150 * ms, Wave: WaveSine, Gain: 0.5, Delay: 300 * ms},
				{Freq: 1047, Duration: 400 * ms, Wave: WaveSine, Gain: 0.6, Delay: 450 * ms},
			},
			SoundLose: {
				{Freq: 440, Duration: 200 * ms, Wave: WaveSquare, Gain: 0.4},
				{Freq: 330, Duration: 200 * ms, Wave: WaveSquare, Gain: 0.4, Delay: 200 * ms},
				{Freq: 220, Duration: 400 * ms, Wave: WaveSquare, Gain: 0.4, Delay: 400 * ms},
			},
		},
	}
}
