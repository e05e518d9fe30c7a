package scenes

import (
	"image/color"
	"os"
	"sync"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// MenuScene displays the main menu
type MenuScene struct {
	ecs    *ecs.ECS
	app    *App
	status string
	once   sync.Once
}

// NewMenuScene creates a new menu scene. status is shown under the options,
// e.g. why the last online match ended.
func NewMenuScene(app *App, status string) *MenuScene {
	return &MenuScene{app: app, status: status}
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)
}

func (ms *MenuScene) configure() {
	ms.ecs = ecs.NewECS(donburi.NewWorld())

	menu := systems.GetOrCreateMenu(ms.ecs)
	menu.Volume = ms.app.Profile.Volume
	menu.Status = ms.status

	ms.ecs.AddSystem(systems.NewUpdateInput(systems.NewSampler(ms.app.Keys)))
	ms.ecs.AddSystem(systems.NewUpdateMenu(ms.onSelect, ms.onVolume))

	ms.ecs.AddRenderer(cfg.Default, systems.DrawMenu)
}

func (ms *MenuScene) onSelect(option components.MainMenuOption) {
	app := ms.app
	switch option {
	case components.MainMenuVsCPU:
		app.Changer.ChangeScene(NewLocalMatchScene(app, systems.ModeSingle))
	case components.MainMenuLocal:
		app.Changer.ChangeScene(NewLocalMatchScene(app, systems.ModeLocal))
	case components.MainMenuHostDuel:
		app.Changer.ChangeScene(NewHostLobbyScene(app, 2))
	case components.MainMenuHostRoyale:
		app.Changer.ChangeScene(NewHostLobbyScene(app, cfg.Poly.MaxPlayers))
	case components.MainMenuJoin:
		app.Changer.ChangeScene(NewJoinScene(app))
	case components.MainMenuExit:
		app.log(logging.Game).Infof("Bye")
		os.Exit(0)
	}
}

func (ms *MenuScene) onVolume(v float64) {
	ms.app.Profile.Volume = v
	ms.app.Sound.SetVolume(v)
	ms.app.Sound.PaddleHit()
	ms.app.SaveProfile()
}
