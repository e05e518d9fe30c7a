package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OpenParty is one entry of partyd's open party listing.
type OpenParty struct {
	Code           string `json:"code"`
	Mode           string `json:"mode"`
	CurrentPlayers int    `json:"currentPlayers"`
	MaxPlayers     int    `json:"maxPlayers"`
}

// listURL turns a partyd address into the URL of its listing.
func listURL(addr string) string {
	switch {
	case strings.HasPrefix(addr, "http://"), strings.HasPrefix(addr, "https://"):
	case strings.HasPrefix(addr, "ws://"), strings.HasPrefix(addr, "wss://"):
		addr = "http" + strings.TrimPrefix(addr, "ws")
		addr = strings.TrimSuffix(addr, "/ws")
	default:
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/") + "/parties"
}

// FetchOpenParties asks partyd at addr for the parties still waiting for
// players.
func FetchOpenParties(ctx context.Context, hc *http.Client, addr string) ([]OpenParty, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL(addr), nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("party listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("party listing returned status %d", resp.StatusCode)
	}

	var parties []OpenParty
	if err := json.NewDecoder(resp.Body).Decode(&parties); err != nil {
		return nil, fmt.Errorf("decode party listing: %w", err)
	}
	return parties, nil
}
