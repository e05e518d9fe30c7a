package messages

import "github.com/Olle-svg/ponggamebyolle/shared/party"

// InsertRequest asks the store to create a party record.
type InsertRequest struct {
	Party party.Party `codec:"party"`
}

// GetRequest reads a record by id.
type GetRequest struct {
	ID string `codec:"id"`
}

// FindByCodeRequest reads a record by its (normalised) party code.
type FindByCodeRequest struct {
	Code string `codec:"code"`
}

// UpdateRequest applies a field-scoped patch.
type UpdateRequest struct {
	ID    string      `codec:"id"`
	Patch party.Patch `codec:"patch"`
}

// DeleteRequest removes a record and notifies its subscribers.
type DeleteRequest struct {
	ID string `codec:"id"`
}

// SubscribeRequest starts the change feed of one record on this connection.
type SubscribeRequest struct {
	ID string `codec:"id"`
}

// UnsubscribeRequest stops a change feed.
type UnsubscribeRequest struct {
	ID string `codec:"id"`
}

// Response answers a request with the same sequence number.
type Response struct {
	Party *party.Party `codec:"party"`
	Code  ErrCode      `codec:"code,omitempty"`
	Error string       `codec:"error,omitempty"`
}

// PartyEvent is pushed to subscribed connections.
type PartyEvent struct {
	ID    string      `codec:"id"`
	Event party.Event `codec:"event"`
}
