package scenes

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/network"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/Olle-svg/ponggamebyolle/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// JoinScene lets the player type a party code or pick an open party.
type JoinScene struct {
	ecsWorld     *ecs.ECS
	app          *App
	joinUI       *ui.JoinUI
	once         sync.Once
	httpClient   *http.Client
	shouldGoBack bool

	listing *pending[[]network.OpenParty]
	joining *pending[*link]
}

func NewJoinScene(app *App) *JoinScene {
	return &JoinScene{
		app:        app,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *JoinScene) Update() {
	s.once.Do(s.configure)
	s.ecsWorld.Update()
	s.joinUI.Update()

	// Apply background results on the main goroutine
	if s.listing != nil {
		if parties, ready, err := s.listing.poll(); ready {
			s.listing = nil
			s.joinUI.SetRefreshing(false)
			if err != nil {
				s.app.log(logging.Net).Debugf("Party listing failed: %v", err)
				s.joinUI.SetStatus("Could not list parties")
			} else {
				entries := make([]components.PartyEntry, 0, len(parties))
				for _, p := range parties {
					entries = append(entries, components.PartyEntry(p))
				}
				s.joinUI.SetParties(entries)
			}
		}
	}

	if s.joining != nil {
		l, ready, err := s.joining.poll()
		if !ready {
			return
		}
		s.joining = nil
		s.joinUI.SetBusy(false)
		if err != nil {
			s.joinUI.SetStatus(userError(err))
			return
		}
		s.app.Profile.LastCode = l.session.Code()
		s.app.SaveProfile()
		s.app.Changer.ChangeScene(NewLobbyScene(s.app, l))
		return
	}

	if s.shouldGoBack || systems.GetInput(s.ecsWorld).JustPressed(cfg.ActionLeave) {
		s.app.Changer.ChangeScene(NewMenuScene(s.app, ""))
	}
}

func (s *JoinScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Menu.BackgroundColor)

	if s.ecsWorld == nil {
		return
	}
	s.joinUI.UI.Draw(screen)
}

func (s *JoinScene) configure() {
	s.ecsWorld = ecs.NewECS(donburi.NewWorld())
	s.ecsWorld.AddSystem(systems.NewUpdateInput(systems.NewSampler(s.app.Keys)))

	s.joinUI = ui.NewJoinUI(
		s.app.Profile.LastCode,
		s.onJoin,
		s.fetchParties,
		func() { s.shouldGoBack = true },
	)

	// Auto-fetch the listing on scene entry
	s.fetchParties()
}

func (s *JoinScene) onJoin(code string) {
	app := s.app
	s.joining = goPending(func() (*link, error) {
		return joinParty(app, code)
	})
}

func (s *JoinScene) fetchParties() {
	if s.listing != nil {
		return
	}
	s.joinUI.SetRefreshing(true)
	addr, hc := s.app.ServerAddr, s.httpClient
	s.listing = goPending(func() ([]network.OpenParty, error) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Net.RequestTimeout)
		defer cancel()
		return network.FetchOpenParties(ctx, hc, addr)
	})
}
