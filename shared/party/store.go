package party

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("party not found")
	ErrConflict  = errors.New("party precondition failed")
	ErrCodeTaken = errors.New("party code already in use")
	ErrClosed    = errors.New("store closed")
)

// EventKind distinguishes change feed events.
type EventKind uint8

const (
	EventUpdate EventKind = iota + 1
	EventDelete
)

func (k EventKind) String() string {
	switch k {
	case EventUpdate:
		return "update"
	case EventDelete:
		return "delete"
	}
	return "unknown"
}

// Event is one change to a party record. Party carries the full record after
// an update and the last known record on delete.
type Event struct {
	Kind  EventKind `codec:"kind" json:"kind"`
	Party Party     `codec:"party" json:"party"`
}

// Store is the realtime record store parties live in. Implementations apply
// each Patch atomically per record; there is no multi-record transaction.
type Store interface {
	Insert(ctx context.Context, p Party) (Party, error)
	Get(ctx context.Context, id string) (Party, error)
	FindByCode(ctx context.Context, code string) (Party, error)
	Update(ctx context.Context, id string, patch Patch) (Party, error)
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, id string) (Subscription, error)
}

// Subscription is a change feed for one record. Events may be coalesced
// (only the newest update survives) but a delete is always delivered last,
// after which the channel is closed.
type Subscription interface {
	Events() <-chan Event
	Close() error
}
