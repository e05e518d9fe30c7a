package components

// LobbyData stores what the party lobby shows while participants gather.
type LobbyData struct {
	Code       string
	Host       bool
	Royale     bool
	Players    []string // Join order; the host is first
	Self       string
	MaxPlayers int
	CanStart   bool // Host of a battle royale with enough players
	Status     string
}

// PartyEntry is one open party offered by the party daemon's listing.
type PartyEntry struct {
	Code           string
	Mode           string
	CurrentPlayers int
	MaxPlayers     int
}
