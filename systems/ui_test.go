package systems

import (
	"testing"

	"github.com/Olle-svg/ponggamebyolle/components"
	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/stretchr/testify/assert"
)

func TestSyncLobby(t *testing.T) {
	var lobby components.LobbyData

	duel := party.New("id", "ABCDE", "host", 2)
	SyncLobby(&lobby, duel, "host", true)
	assert.Equal(t, []string{"host"}, lobby.Players)
	assert.False(t, lobby.CanStart, "a 1v1 starts when the guest joins")

	royale := party.New("id", "FGHJK", "host", 4)
	royale.PlayerIDs = append(royale.PlayerIDs, "p2")
	SyncLobby(&lobby, royale, "host", true)
	assert.True(t, lobby.Royale)
	assert.Equal(t, []string{"host", "p2"}, lobby.Players)
	assert.True(t, lobby.CanStart)

	SyncLobby(&lobby, royale, "p2", false)
	assert.False(t, lobby.CanStart, "only the host starts")
}

func TestGameOverOffersRestart(t *testing.T) {
	var menu, again int
	onMenu := func() { menu++ }
	onAgain := func() { again++ }

	handleGameOver(held(cfg.ActionMenuSelect), onMenu, onAgain)
	assert.Equal(t, 1, again)
	handleGameOver(held(cfg.ActionLeave), onMenu, onAgain)
	assert.Equal(t, 1, menu)
	handleGameOver(InputState{}, onMenu, onAgain)
	assert.Equal(t, [2]int{1, 1}, [2]int{menu, again}, "idle frames do nothing")

	handleGameOver(held(cfg.ActionMenuSelect), onMenu, nil)
	assert.Equal(t, 2, menu, "online results only lead back to the menu")

	assert.Equal(t, "Enter: Play again   Esc: Menu", GameOverHint(&components.GameOverData{CanRestart: true}))
	assert.Equal(t, "Enter: Back to menu", GameOverHint(&components.GameOverData{}))
}
