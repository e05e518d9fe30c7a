package network

import "errors"

var (
	ErrPartyNotFound    = errors.New("party not found")
	ErrPartyFull        = errors.New("party is full")
	ErrCreateFailed     = errors.New("failed to create party")
	ErrJoinFailed       = errors.New("failed to join party")
	ErrHostDisconnected = errors.New("host disconnected")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNotInParty       = errors.New("not in a party")
	ErrStoreClosed      = errors.New("party store connection closed")
	ErrInvalidStatus    = errors.New("unknown game status")
)

// ErrNotEnoughPlayers is returned by StartMatch while the host is alone.
var ErrNotEnoughPlayers = errors.New("not enough players to start")
