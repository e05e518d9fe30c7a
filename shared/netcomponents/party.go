package netcomponents

import (
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/yohamta/donburi"
)

// NetPartyData is the authoritative copy of one party record on the server.
type NetPartyData struct {
	Party party.Party
}

var NetParty = donburi.NewComponentType[NetPartyData]()
