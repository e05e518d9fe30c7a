package systems

import (
	"sync"

	"github.com/Olle-svg/ponggamebyolle/assets"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Feedback is told about the events a player should hear.
type Feedback interface {
	PaddleHit()
	WallBounce()
	Score()
	GameOver(won bool)
}

// NopFeedback ignores everything; used headless and in tests.
type NopFeedback struct{}

func (NopFeedback) PaddleHit()    {}
func (NopFeedback) WallBounce()   {}
func (NopFeedback) Score()        {}
func (NopFeedback) GameOver(bool) {}

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalToneBank     *assets.ToneBank
	audioInitOnce      sync.Once
)

// initGlobalAudio creates the audio context and renders the tones once.
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalToneBank = assets.NewToneBank(cfg.Audio.SampleRate)
	})
}

// SoundPlayer plays the synthesised effects. Every call starts a new player
// and returns at once.
type SoundPlayer struct {
	mu     sync.Mutex
	volume float64
}

func NewSoundPlayer(volume float64) *SoundPlayer {
	initGlobalAudio()
	return &SoundPlayer{volume: volume}
}

func (p *SoundPlayer) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()
}

func (p *SoundPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *SoundPlayer) PaddleHit()  { p.play(cfg.SoundPaddleHit) }
func (p *SoundPlayer) WallBounce() { p.play(cfg.SoundWallBounce) }
func (p *SoundPlayer) Score()      { p.play(cfg.SoundScore) }

func (p *SoundPlayer) GameOver(won bool) {
	if won {
		p.play(cfg.SoundWin)
		return
	}
	p.play(cfg.SoundLose)
}

func (p *SoundPlayer) play(id cfg.SoundID) {
	volume := p.Volume()
	if volume <= 0 {
		return
	}
	pcm := globalToneBank.PCM(id)
	if len(pcm) == 0 {
		return
	}
	player := globalAudioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
}
