// Package party defines the shared party record that all participants of a
// match read and write through a realtime store.
package party

import (
	"slices"
)

// Status is the lifecycle stage of a party.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusPlaying, StatusPaused, StatusFinished:
		return true
	}
	return false
}

// PaddleUnset marks a paddle field nobody has reported yet.
const PaddleUnset = -1.0

// Party is one match record. Positions are percentages of the arena size so
// participants with different canvas sizes agree; ball velocity is raw units
// per frame.
type Party struct {
	ID     string `codec:"id" json:"id"`
	Code   string `codec:"party_code" json:"party_code"`
	HostID string `codec:"host_id" json:"host_id"`
	// Empty while the guest slot is open.
	GuestID string `codec:"guest_id,omitempty" json:"guest_id,omitempty"`

	HostPaddleY  float64 `codec:"host_paddle_y" json:"host_paddle_y"`
	GuestPaddleY float64 `codec:"guest_paddle_y" json:"guest_paddle_y"`

	BallX  float64 `codec:"ball_x" json:"ball_x"`
	BallY  float64 `codec:"ball_y" json:"ball_y"`
	BallDX float64 `codec:"ball_dx" json:"ball_dx"`
	BallDY float64 `codec:"ball_dy" json:"ball_dy"`

	HostScore  int    `codec:"host_score" json:"host_score"`
	GuestScore int    `codec:"guest_score" json:"guest_score"`
	Status     Status `codec:"game_status" json:"game_status"`

	MaxPlayers      int                `codec:"max_players" json:"max_players"`
	CurrentPlayers  int                `codec:"current_players" json:"current_players"`
	PlayerIDs       []string           `codec:"player_ids,omitempty" json:"player_ids,omitempty"`
	PlayerPositions map[string]float64 `codec:"player_positions,omitempty" json:"player_positions,omitempty"`
	Eliminated      []string           `codec:"eliminated_players,omitempty" json:"eliminated_players,omitempty"`

	UpdatedAt int64 `codec:"updated_at" json:"updated_at"` // Unix milliseconds, set by the store
}

// New returns a waiting party hosted by hostID. maxPlayers above two makes it
// a battle royale.
func New(id, code, hostID string, maxPlayers int) Party {
	p := Party{
		ID:           id,
		Code:         code,
		HostID:       hostID,
		HostPaddleY:  PaddleUnset,
		GuestPaddleY: PaddleUnset,
		BallX:        50,
		BallY:        50,
		Status:       StatusWaiting,
		MaxPlayers:   max(maxPlayers, 2),
	}
	if p.IsBattleRoyale() {
		p.PlayerIDs = []string{hostID}
		p.PlayerPositions = map[string]float64{hostID: 0}
	}
	p.recount()
	return p
}

// IsBattleRoyale reports whether the party uses the polygon arena.
func (p *Party) IsBattleRoyale() bool {
	return p.MaxPlayers > 2
}

// IsFull reports whether no participant slot is open.
func (p *Party) IsFull() bool {
	if p.IsBattleRoyale() {
		return len(p.PlayerIDs) >= p.MaxPlayers
	}
	return p.GuestID != ""
}

// HasPlayer reports whether id takes part in the party.
func (p *Party) HasPlayer(id string) bool {
	if id == "" {
		return false
	}
	if id == p.HostID || id == p.GuestID {
		return true
	}
	return slices.Contains(p.PlayerIDs, id)
}

// IsEliminated reports whether id has been knocked out of a battle royale.
func (p *Party) IsEliminated(id string) bool {
	return slices.Contains(p.Eliminated, id)
}

// Clone returns a deep copy; the store never shares slices or maps.
func (p Party) Clone() Party {
	p.PlayerIDs = slices.Clone(p.PlayerIDs)
	p.Eliminated = slices.Clone(p.Eliminated)
	if p.PlayerPositions != nil {
		pos := make(map[string]float64, len(p.PlayerPositions))
		for k, v := range p.PlayerPositions {
			pos[k] = v
		}
		p.PlayerPositions = pos
	}
	return p
}

func (p *Party) recount() {
	if p.IsBattleRoyale() {
		p.CurrentPlayers = len(p.PlayerIDs)
		return
	}
	p.CurrentPlayers = 1
	if p.GuestID != "" {
		p.CurrentPlayers = 2
	}
}
