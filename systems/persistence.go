package systems

import (
	"encoding/json"
	"fmt"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/quasilyte/gdata"
)

const profileKey = "profile"

// Profile is what the client remembers between runs.
type Profile struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	LastCode string  `json:"lastCode"`
	Volume   float64 `json:"volume"`
}

// ItemStore is the slice of *gdata.Manager the profile needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenItemStore opens the per-user data directory of the game.
func OpenItemStore(appName string) (*gdata.Manager, error) {
	return gdata.Open(gdata.Config{AppName: appName})
}

// LoadProfile reads the saved profile. A missing or unreadable profile yields
// a fresh one with a new player id; the bool reports whether it was created.
func LoadProfile(items ItemStore, defaultVolume float64) (Profile, bool, error) {
	fresh := Profile{PlayerID: party.NewPlayerID(), Volume: defaultVolume}
	if items == nil {
		return fresh, true, nil
	}

	data, err := items.LoadItem(profileKey)
	if err != nil {
		return fresh, true, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		return fresh, true, nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return fresh, true, fmt.Errorf("parse profile: %w", err)
	}
	if p.PlayerID == "" {
		p.PlayerID = fresh.PlayerID
		return p, true, nil
	}
	return p, false, nil
}

// SaveProfile writes p.
func SaveProfile(items ItemStore, p Profile) error {
	if items == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := items.SaveItem(profileKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
