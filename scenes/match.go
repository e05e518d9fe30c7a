package scenes

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// overDelay is how many frames the final board stays up before the result
// screen.
const overDelay = 90

// MatchScene plays one match, local or online, through a Driver.
type MatchScene struct {
	ecsWorld *ecs.ECS
	app      *App
	setup    systems.Setup
	link     *link
	driver   *systems.Driver
	once     sync.Once

	overFrames int
	err        error
}

// NewLocalMatchScene starts a match against the AI or a second local player.
func NewLocalMatchScene(app *App, mode systems.Mode) *MatchScene {
	return &MatchScene{
		app: app,
		setup: systems.Setup{
			Mode:       mode,
			Difficulty: cfg.Bot.Default,
		},
	}
}

// NewOnlineMatchScene plays the match of a party the session is part of.
func NewOnlineMatchScene(app *App, l *link) *MatchScene {
	snap, _ := l.session.Snapshot()
	mode := systems.ModeOnline
	if snap.IsBattleRoyale() {
		mode = systems.ModeBattleRoyale
	}
	return &MatchScene{
		app:  app,
		link: l,
		setup: systems.Setup{
			Mode:   mode,
			Party:  l.session,
			Out:    l.startPublishing(),
			Host:   l.session.IsHost(),
			Smooth: cfg.Net.SmoothGuest,
		},
	}
}

func (ms *MatchScene) Update() {
	ms.once.Do(ms.configure)
	if ms.err != nil {
		ms.leave(ms.err.Error())
		return
	}
	ms.ecsWorld.Update()
}

// tick is the frame system of the scene.
func (ms *MatchScene) tick(_ *ecs.ECS) {
	ms.driver.Tick(time.Now())
	v := ms.driver.View()

	if v.Over {
		ms.overFrames++
		if ms.overFrames >= overDelay {
			ms.finish(v)
		}
		return
	}

	if ms.link != nil {
		select {
		case <-ms.link.session.Done():
			ms.leave(endReason(ms.link.session.Err()))
			return
		default:
		}
	}

	if ms.driver.Input().JustPressed(cfg.ActionLeave) {
		ms.leave("")
	}
}

func (ms *MatchScene) leave(status string) {
	ms.driver.Stop()
	if ms.link != nil {
		ms.link.closeAsync()
	}
	ms.app.Changer.ChangeScene(NewMenuScene(ms.app, status))
}

func (ms *MatchScene) finish(v systems.View) {
	ms.driver.Stop()
	if ms.link != nil {
		ms.link.closeAsync()
	}

	title := "YOU LOSE"
	if v.Won {
		title = "YOU WIN"
	}
	var scores, detail string
	switch {
	case v.Rect != nil:
		scores = fmt.Sprintf("%d - %d", v.Rect.Scores[0], v.Rect.Scores[1])
		detail = v.Winner + " wins"
		if ms.setup.Mode == systems.ModeLocal {
			title = v.Winner + " WINS"
		}
	case v.Winner != "":
		detail = "Last one standing: " + v.Winner
	default:
		detail = "Nobody survived"
	}
	var restart func()
	if mode := ms.setup.Mode; mode == systems.ModeSingle || mode == systems.ModeLocal {
		restart = func() { ms.app.Changer.ChangeScene(NewLocalMatchScene(ms.app, mode)) }
	}
	ms.app.Changer.ChangeScene(NewGameOverScene(ms.app, title, detail, scores, v.Won, restart))
}

func (ms *MatchScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ms.ecsWorld == nil || ms.driver == nil {
		return
	}
	ms.ecsWorld.Draw(screen)
}

func (ms *MatchScene) configure() {
	ms.ecsWorld = ecs.NewECS(donburi.NewWorld())

	s := ms.setup
	s.Width, s.Height = float64(cfg.C.Width), float64(cfg.C.Height)
	s.Hooks = systems.Hooks{Feedback: ms.app.Sound}
	s.Log = ms.app.log(logging.Sync)

	controller, err := systems.NewController(s)
	if err != nil {
		ms.app.log(logging.Game).Errorf("Match setup: %v", err)
		ms.err = err
		ms.driver = systems.NewDriver(systems.NewSampler(ms.app.Keys), nil)
		return
	}
	ms.app.log(logging.Game).Infof("Starting %s match", s.Mode)
	ms.driver = systems.NewDriver(systems.NewSampler(ms.app.Keys), controller)

	code := ""
	if ms.link != nil {
		code = ms.link.session.Code()
	}

	ms.ecsWorld.AddSystem(ms.tick)
	ms.ecsWorld.AddRenderer(cfg.Default, func(_ *ecs.ECS, screen *ebiten.Image) {
		systems.DrawMatch(screen, ms.driver.View())
	})
	ms.ecsWorld.AddRenderer(cfg.HUD, func(_ *ecs.ECS, screen *ebiten.Image) {
		systems.DrawMatchHUD(screen, ms.driver.View(), code)
	})
}
