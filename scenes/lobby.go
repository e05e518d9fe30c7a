package scenes

import (
	"context"
	"errors"
	"sync"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/network"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/Olle-svg/ponggamebyolle/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// LobbyScene shows the party code and its participants until the match
// starts. A 1v1 starts when the guest joins; a battle royale when the host
// says so.
type LobbyScene struct {
	ecs     *ecs.ECS
	app     *App
	link    *link
	lobbyUI *ui.LobbyUI
	lobby   components.LobbyData
	once    sync.Once

	shouldStart  bool
	shouldGoBack bool

	creating *pending[*link]
	starting *pending[struct{}]
}

// NewHostLobbyScene creates a party with room for maxPlayers and waits in it.
func NewHostLobbyScene(app *App, maxPlayers int) *LobbyScene {
	return &LobbyScene{
		app: app,
		creating: goPending(func() (*link, error) {
			return hostParty(app, maxPlayers)
		}),
	}
}

// NewLobbyScene waits in a party the player is already part of.
func NewLobbyScene(app *App, l *link) *LobbyScene {
	return &LobbyScene{app: app, link: l}
}

func (ls *LobbyScene) Update() {
	ls.once.Do(ls.configure)
	ls.ecs.Update()
	ls.lobbyUI.Update()

	lobby := &ls.lobby
	in := systems.GetInput(ls.ecs)

	if ls.creating != nil {
		l, ready, err := ls.creating.poll()
		if !ready {
			lobby.Status = "Creating party..."
			return
		}
		ls.creating = nil
		if err != nil {
			ls.app.log(logging.Party).Warnf("Create party: %v", err)
			ls.app.Changer.ChangeScene(NewMenuScene(ls.app, userError(err)))
			return
		}
		ls.link = l
		ls.app.Profile.LastCode = l.session.Code()
		ls.app.SaveProfile()
	}

	session := ls.link.session
	select {
	case <-session.Done():
		ls.link.closeAsync()
		ls.app.Changer.ChangeScene(NewMenuScene(ls.app, endReason(session.Err())))
		return
	default:
	}

	if ls.shouldGoBack || in.JustPressed(cfg.ActionLeave) {
		ls.link.closeAsync()
		ls.app.Changer.ChangeScene(NewMenuScene(ls.app, ""))
		return
	}

	snap, _ := session.Snapshot()
	systems.SyncLobby(lobby, snap, session.PlayerID(), session.IsHost())

	switch snap.Status {
	case party.StatusPlaying, party.StatusPaused:
		ls.app.Changer.ChangeScene(NewOnlineMatchScene(ls.app, ls.link))
		return
	case party.StatusWaiting:
		lobby.Status = ls.waitingMessage(lobby.Royale, session.IsHost())
	}

	if ls.starting != nil {
		if _, ready, err := ls.starting.poll(); ready {
			ls.starting = nil
			if errors.Is(err, network.ErrNotEnoughPlayers) {
				lobby.Status = "At least two players are needed"
			} else if err != nil {
				lobby.Status = "Could not start: " + err.Error()
			}
		}
		return
	}
	start := ls.shouldStart || in.JustPressed(cfg.ActionMenuSelect)
	ls.shouldStart = false
	if lobby.CanStart && start {
		ls.starting = goPending(func() (struct{}, error) {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Net.RequestTimeout)
			defer cancel()
			return struct{}{}, session.StartMatch(ctx)
		})
	}
}

func (ls *LobbyScene) waitingMessage(royale, host bool) string {
	switch {
	case royale && host:
		return "Waiting for players"
	case royale:
		return "Waiting for the host to start"
	case host:
		return "Waiting for an opponent"
	}
	return "Joining..."
}

func (ls *LobbyScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Menu.BackgroundColor)

	if ls.ecs == nil {
		return
	}
	ls.lobbyUI.UI.Draw(screen)
}

func (ls *LobbyScene) configure() {
	ls.ecs = ecs.NewECS(donburi.NewWorld())
	ls.ecs.AddSystem(systems.NewUpdateInput(systems.NewSampler(ls.app.Keys)))

	ls.lobbyUI = ui.NewLobbyUI(
		&ls.lobby,
		func() { ls.shouldStart = true },
		func() { ls.shouldGoBack = true },
	)
}
