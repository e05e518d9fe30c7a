package systems

import (
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// InputState is one frame of sampled actions plus the previous frame, so
// edges can be derived.
type InputState struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

func (s InputState) Pressed(id cfg.ActionID) bool {
	return s.Current[id]
}

func (s InputState) JustPressed(id cfg.ActionID) bool {
	return s.Current[id] && !s.Previous[id]
}

// Axis folds two opposing actions into -1, 0 or +1. Holding both cancels out.
func (s InputState) Axis(neg, pos cfg.ActionID) float64 {
	switch {
	case s.Current[neg] && !s.Current[pos]:
		return -1
	case s.Current[pos] && !s.Current[neg]:
		return 1
	}
	return 0
}

// PaddleAxis is the vertical direction of the local paddle in online play,
// where both key sets steer the same paddle.
func (s InputState) PaddleAxis() float64 {
	if a := s.Axis(cfg.ActionPrimaryUp, cfg.ActionPrimaryDown); a != 0 {
		return a
	}
	return s.Axis(cfg.ActionSecondaryUp, cfg.ActionSecondaryDown)
}

// KeySource reports whether an action's keys or buttons are held right now.
type KeySource interface {
	Pressed(id cfg.ActionID) bool
}

// EbitenKeys reads the bindings of config.Input from ebiten.
type EbitenKeys struct {
	gamepadIDs []ebiten.GamepadID
}

func (k *EbitenKeys) Pressed(id cfg.ActionID) bool {
	binding, ok := cfg.Input.Bindings[id]
	if !ok {
		return false
	}
	for _, key := range binding.Keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	if len(binding.StandardGamepadButtons) == 0 {
		return false
	}
	k.gamepadIDs = ebiten.AppendGamepadIDs(k.gamepadIDs[:0])
	for _, gpID := range k.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				return true
			}
		}
	}
	return false
}

// Sampler polls a KeySource once per frame.
type Sampler struct {
	src   KeySource
	state InputState
}

func NewSampler(src KeySource) *Sampler {
	return &Sampler{src: src}
}

// Sample swaps the frame buffers and polls every action.
func (s *Sampler) Sample() InputState {
	s.state.Previous = s.state.Current
	s.state.Current = [cfg.ActionCount]bool{}
	for id := cfg.ActionID(1); id < cfg.ActionCount; id++ {
		s.state.Current[id] = s.src.Pressed(id)
	}
	return s.state
}

// input is the per-scene singleton holding the frame's InputState.
var input = donburi.NewComponentType[InputState]()

// NewUpdateInput samples src into the scene's input singleton once per frame.
// It must run before the systems that read GetInput.
func NewUpdateInput(s *Sampler) ecs.System {
	return func(e *ecs.ECS) {
		input.SetValue(getOrCreateInput(e), s.Sample())
	}
}

// GetInput returns the input sampled this frame.
func GetInput(e *ecs.ECS) InputState {
	return *input.Get(getOrCreateInput(e))
}

func getOrCreateInput(e *ecs.ECS) *donburi.Entry {
	if entry, ok := input.First(e.World); ok {
		return entry
	}
	return e.World.Entry(e.World.Create(input))
}
