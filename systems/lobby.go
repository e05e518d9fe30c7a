package systems

import (
	"github.com/Olle-svg/ponggamebyolle/components"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
)

// SyncLobby copies a party snapshot into the lobby state.
func SyncLobby(lobby *components.LobbyData, snap party.Party, self string, host bool) {
	lobby.Code = snap.Code
	lobby.Host = host
	lobby.Self = self
	lobby.Royale = snap.IsBattleRoyale()
	lobby.MaxPlayers = snap.MaxPlayers

	if lobby.Royale {
		lobby.Players = append(lobby.Players[:0], snap.PlayerIDs...)
	} else {
		lobby.Players = append(lobby.Players[:0], snap.HostID)
		if snap.GuestID != "" {
			lobby.Players = append(lobby.Players, snap.GuestID)
		}
	}
	lobby.CanStart = host && lobby.Royale && len(lobby.Players) >= 2
}
