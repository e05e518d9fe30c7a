package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameOverScene displays the result of a match
type GameOverScene struct {
	ecs  *ecs.ECS
	app  *App
	once sync.Once

	title, detail, scores string
	won                   bool
	restart               func()
}

// NewGameOverScene creates a new game over scene. A nil restart offers only
// the way back to the menu.
func NewGameOverScene(app *App, title, detail, scores string, won bool, restart func()) *GameOverScene {
	return &GameOverScene{app: app, title: title, detail: detail, scores: scores, won: won, restart: restart}
}

func (gs *GameOverScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()
}

func (gs *GameOverScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

func (gs *GameOverScene) configure() {
	gs.ecs = ecs.NewECS(donburi.NewWorld())

	over := systems.GetOrCreateGameOver(gs.ecs)
	over.Title = gs.title
	over.Detail = gs.detail
	over.Scores = gs.scores
	over.Won = gs.won
	over.CanRestart = gs.restart != nil

	gs.ecs.AddSystem(systems.NewUpdateInput(systems.NewSampler(gs.app.Keys)))
	gs.ecs.AddSystem(systems.NewUpdateGameOver(func() {
		gs.app.Changer.ChangeScene(NewMenuScene(gs.app, ""))
	}, gs.restart))
	gs.ecs.AddRenderer(cfg.Default, systems.DrawGameOver)
}
