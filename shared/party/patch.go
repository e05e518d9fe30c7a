package party

import (
	"fmt"
	"slices"
)

// BallSnapshot is the ball as published by the host.
type BallSnapshot struct {
	X  float64 `codec:"x" json:"x"` // Percent of arena width
	Y  float64 `codec:"y" json:"y"` // Percent of arena height
	DX float64 `codec:"dx" json:"dx"`
	DY float64 `codec:"dy" json:"dy"`
}

// PlayerPosition is a battle royale paddle update.
type PlayerPosition struct {
	ID  string  `codec:"id" json:"id"`
	Pos float64 `codec:"pos" json:"pos"`
}

// Patch is a field-scoped update. Nil and empty fields are left alone, so
// writers that touch different fields never overwrite each other.
type Patch struct {
	GuestID      *string       `codec:"guest_id" json:"guest_id,omitempty"`
	HostPaddleY  *float64      `codec:"host_paddle_y" json:"host_paddle_y,omitempty"`
	GuestPaddleY *float64      `codec:"guest_paddle_y" json:"guest_paddle_y,omitempty"`
	Ball         *BallSnapshot `codec:"ball" json:"ball,omitempty"`
	HostScore    *int          `codec:"host_score" json:"host_score,omitempty"`
	GuestScore   *int          `codec:"guest_score" json:"guest_score,omitempty"`
	Status       *Status       `codec:"game_status" json:"game_status,omitempty"`

	AddPlayer      string          `codec:"add_player,omitempty" json:"add_player,omitempty"`
	RemovePlayer   string          `codec:"remove_player,omitempty" json:"remove_player,omitempty"`
	PlayerPosition *PlayerPosition `codec:"player_position" json:"player_position,omitempty"`
	Eliminate      string          `codec:"eliminate,omitempty" json:"eliminate,omitempty"`

	// Preconditions, checked before anything is written.
	IfGuestID  *string `codec:"if_guest_id" json:"if_guest_id,omitempty"`
	IfOpenSlot bool    `codec:"if_open_slot,omitempty" json:"if_open_slot,omitempty"`
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }

// IsEmpty reports whether the patch would change nothing.
func (pt Patch) IsEmpty() bool {
	return pt.GuestID == nil && pt.HostPaddleY == nil && pt.GuestPaddleY == nil &&
		pt.Ball == nil && pt.HostScore == nil && pt.GuestScore == nil && pt.Status == nil &&
		pt.AddPlayer == "" && pt.RemovePlayer == "" && pt.PlayerPosition == nil && pt.Eliminate == ""
}

// Apply writes the patch into rec. A failed precondition returns ErrConflict
// and leaves rec untouched.
func (pt Patch) Apply(rec *Party) error {
	if pt.IfGuestID != nil && rec.GuestID != *pt.IfGuestID {
		return fmt.Errorf("guest slot is %q: %w", rec.GuestID, ErrConflict)
	}
	if pt.IfOpenSlot && rec.IsFull() {
		return fmt.Errorf("party %s is full: %w", rec.Code, ErrConflict)
	}
	if pt.Status != nil && !pt.Status.Valid() {
		return fmt.Errorf("unknown status %q", *pt.Status)
	}

	if pt.GuestID != nil {
		rec.GuestID = *pt.GuestID
	}
	if pt.HostPaddleY != nil {
		rec.HostPaddleY = *pt.HostPaddleY
	}
	if pt.GuestPaddleY != nil {
		rec.GuestPaddleY = *pt.GuestPaddleY
	}
	if pt.Ball != nil {
		rec.BallX, rec.BallY = pt.Ball.X, pt.Ball.Y
		rec.BallDX, rec.BallDY = pt.Ball.DX, pt.Ball.DY
	}
	if pt.HostScore != nil {
		rec.HostScore = *pt.HostScore
	}
	if pt.GuestScore != nil {
		rec.GuestScore = *pt.GuestScore
	}
	if pt.Status != nil {
		rec.Status = *pt.Status
	}

	if pt.AddPlayer != "" && !slices.Contains(rec.PlayerIDs, pt.AddPlayer) {
		rec.PlayerIDs = append(rec.PlayerIDs, pt.AddPlayer)
		if rec.PlayerPositions == nil {
			rec.PlayerPositions = map[string]float64{}
		}
		rec.PlayerPositions[pt.AddPlayer] = 0
	}
	if pt.RemovePlayer != "" {
		rec.PlayerIDs = slices.DeleteFunc(rec.PlayerIDs, func(id string) bool { return id == pt.RemovePlayer })
		delete(rec.PlayerPositions, pt.RemovePlayer)
	}
	if pp := pt.PlayerPosition; pp != nil && slices.Contains(rec.PlayerIDs, pp.ID) {
		rec.PlayerPositions[pp.ID] = pp.Pos
	}
	// Elimination is monotonic.
	if pt.Eliminate != "" && slices.Contains(rec.PlayerIDs, pt.Eliminate) && !rec.IsEliminated(pt.Eliminate) {
		rec.Eliminated = append(rec.Eliminated, pt.Eliminate)
	}

	rec.recount()
	return nil
}
