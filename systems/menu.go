package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

const volumeStep = 0.1

// NewUpdateMenu creates the main menu system. onSelect receives the chosen
// option; onVolume receives every volume change.
func NewUpdateMenu(onSelect func(components.MainMenuOption), onVolume func(float64)) ecs.System {
	return func(e *ecs.ECS) {
		menu := GetOrCreateMenu(e)
		in := GetInput(e)

		// Navigate menu with wrap-around
		numOptions := len(menu.VisibleOptions)
		if numOptions == 0 {
			return
		}
		if in.JustPressed(cfg.ActionMenuUp) {
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if in.JustPressed(cfg.ActionMenuDown) {
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		selected := menu.VisibleOptions[menu.SelectedIndex]
		if selected == components.MainMenuVolume {
			step := 0.0
			if in.JustPressed(cfg.ActionRingBackward) {
				step = -volumeStep
			}
			if in.JustPressed(cfg.ActionRingForward) {
				step = volumeStep
			}
			if step != 0 {
				menu.Volume = math.Round(math.Max(0, math.Min(1, menu.Volume+step))*10) / 10
				if onVolume != nil {
					onVolume(menu.Volume)
				}
			}
			return
		}

		if in.JustPressed(cfg.ActionMenuSelect) {
			menu.Status = ""
			onSelect(selected)
		}
	}
}

// DrawMenu renders the main menu screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Menu.BackgroundColor, false)

	drawCentered(screen, "PONG", fonts.Title.Get(), width, int(cfg.Menu.TitleY), cfg.Menu.TitleColor)

	menuFont := fonts.Bold.Get()
	for i, option := range menu.VisibleOptions {
		y := cfg.Menu.MenuStartY + float64(i)*(cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap)

		textColor := cfg.Menu.TextColorNormal
		if i == menu.SelectedIndex {
			textColor = cfg.Menu.TextColorSelected
		}
		label := getOptionLabel(option, menu.Volume)
		drawCentered(screen, label, menuFont, width, int(y+cfg.Menu.MenuItemHeight), textColor)
	}

	if menu.Status != "" {
		drawCentered(screen, menu.Status, fonts.Regular.Get(), width, int(height)-40, cfg.Red)
	}

	hint := "W/S or Arrows: Navigate   Enter: Select   A/D: Volume"
	drawCentered(screen, hint, fonts.Small.Get(), width, int(height)-12, cfg.Menu.TextColorNormal)
}

// getOptionLabel returns the display text for a menu option
func getOptionLabel(option components.MainMenuOption, volume float64) string {
	switch option {
	case components.MainMenuVsCPU:
		return "Play vs CPU"
	case components.MainMenuLocal:
		return "Local 2 Players"
	case components.MainMenuHostDuel:
		return "Host Online 1v1"
	case components.MainMenuHostRoyale:
		return "Host Battle Royale"
	case components.MainMenuJoin:
		return "Join Party"
	case components.MainMenuVolume:
		return fmt.Sprintf("< Volume %d%% >", int(math.Round(volume*100)))
	case components.MainMenuExit:
		return "Exit"
	default:
		return ""
	}
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			VisibleOptions: []components.MainMenuOption{
				components.MainMenuVsCPU,
				components.MainMenuLocal,
				components.MainMenuHostDuel,
				components.MainMenuHostRoyale,
				components.MainMenuJoin,
				components.MainMenuVolume,
				components.MainMenuExit,
			},
			Volume: cfg.Audio.DefaultSFXVol,
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}

func drawCentered(screen *ebiten.Image, s string, face font.Face, width float64, y int, clr color.Color) {
	x := int((width - float64(fonts.Width(face, s))) / 2)
	text.Draw(screen, s, face, x, y, clr)
}
