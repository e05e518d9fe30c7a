package core

import (
	"encoding/json"
	"net/http"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/decred/slog"
)

// PartySummary is the public listing entry of an open party.
type PartySummary struct {
	Code           string `json:"code"`
	Mode           string `json:"mode"`
	CurrentPlayers int    `json:"currentPlayers"`
	MaxPlayers     int    `json:"maxPlayers"`
}

// OpenParties returns the parties still waiting for players.
func OpenParties(store *Store) []PartySummary {
	out := []PartySummary{}
	for _, p := range store.List() {
		if p.Status != party.StatusWaiting || p.IsFull() {
			continue
		}
		mode := "1v1"
		if p.IsBattleRoyale() {
			mode = "battle_royale"
		}
		out = append(out, PartySummary{
			Code:           p.Code,
			Mode:           mode,
			CurrentPlayers: p.CurrentPlayers,
			MaxPlayers:     p.MaxPlayers,
		})
	}
	return out
}

func ListParties(store *Store, log slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(OpenParties(store)); err != nil {
			log.Warnf("List encode error: %v", err)
		}
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Parties int    `json:"parties"`
	Clients int    `json:"clients"`
}

func Health(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "ok",
			Parties: s.store.Len(),
			Clients: s.ConnCount(),
		})
	}
}
