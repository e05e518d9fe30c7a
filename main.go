package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/fonts"
	"github.com/Olle-svg/ponggamebyolle/scenes"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

const appName = "ponggamebyolle"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(app *scenes.App) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	app.Changer = g
	g.scene = scenes.NewMenuScene(app, "")
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	// A missing .env is fine; flags and defaults still apply.
	_ = godotenv.Load()

	server := flag.String("server", envOr("PONG_SERVER", config.Net.ServerAddr), "Party daemon address (host:port or URL)")
	level := flag.String("loglevel", envOr("PONG_LOGLEVEL", config.Debug.LogLevel), "Log level (trace, debug, info, warn, error)")
	smooth := flag.Bool("smooth", config.Net.SmoothGuest, "Ease the guest ball between host snapshots")
	flag.Parse()

	config.Net.ServerAddr = *server
	config.Net.SmoothGuest = *smooth
	config.Debug.LogLevel = *level

	logs := logging.New(os.Stderr, *level)
	gameLog := logs.Logger(logging.Game)

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	// Initialize persistence and load the saved profile
	var items systems.ItemStore
	if m, err := systems.OpenItemStore(appName); err != nil {
		gameLog.Warnf("Could not initialize persistence: %v", err)
	} else {
		items = m
	}
	profile, created, err := systems.LoadProfile(items, config.Audio.DefaultSFXVol)
	if err != nil {
		gameLog.Warnf("Could not load profile, starting fresh: %v", err)
	}
	gameLog.Infof("Playing as %s", profile.PlayerID)

	app := &scenes.App{
		Logs:       logs,
		ServerAddr: config.Net.ServerAddr,
		Items:      items,
		Profile:    profile,
		Sound:      systems.NewSoundPlayer(profile.Volume),
		Keys:       &systems.EbitenKeys{},
	}
	if created {
		app.SaveProfile()
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Pong")
	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(app)); err != nil {
		log.Fatal(err)
	}
}

// envOr reads key from the environment, falling back to def.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
