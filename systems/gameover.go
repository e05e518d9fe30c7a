package systems

import (
	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateGameOver returns the singleton GameOver component.
func GetOrCreateGameOver(e *ecs.ECS) *components.GameOverData {
	if _, ok := components.GameOver.First(e.World); !ok {
		e.World.Entry(e.World.Create(components.GameOver))
	}
	ent, _ := components.GameOver.First(e.World)
	return components.GameOver.Get(ent)
}

// NewUpdateGameOver leaves the result screen. Select replays the match when
// onRestart is set and returns to the menu otherwise; leave always returns.
func NewUpdateGameOver(onMenu, onRestart func()) ecs.System {
	return func(e *ecs.ECS) {
		handleGameOver(GetInput(e), onMenu, onRestart)
	}
}

func handleGameOver(in InputState, onMenu, onRestart func()) {
	switch {
	case in.JustPressed(cfg.ActionLeave):
		onMenu()
	case in.JustPressed(cfg.ActionMenuSelect) && onRestart != nil:
		onRestart()
	case in.JustPressed(cfg.ActionMenuSelect):
		onMenu()
	}
}

// GameOverHint is the key help shown under the result.
func GameOverHint(over *components.GameOverData) string {
	if over.CanRestart {
		return "Enter: Play again   Esc: Menu"
	}
	return "Enter: Back to menu"
}

// DrawGameOver renders the result screen
func DrawGameOver(e *ecs.ECS, screen *ebiten.Image) {
	over := GetOrCreateGameOver(e)
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Palette.Background, false)

	titleColor := cfg.Red
	if over.Won {
		titleColor = cfg.Palette.Left
	}
	drawCentered(screen, over.Title, fonts.Title.Get(), width, int(height/2)-40, titleColor)
	if over.Scores != "" {
		drawCentered(screen, over.Scores, fonts.Score.Get(), width, int(height/2)+10, cfg.Palette.Text)
	}
	if over.Detail != "" {
		drawCentered(screen, over.Detail, fonts.Regular.Get(), width, int(height/2)+50, cfg.Palette.Text)
	}
	drawCentered(screen, GameOverHint(over), fonts.Small.Get(), width, int(height)-12, cfg.Menu.TextColorNormal)
}
