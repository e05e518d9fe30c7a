package messages

import (
	"errors"
	"fmt"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
)

// ErrCode carries a store error across the wire.
type ErrCode uint8

const (
	ErrNone ErrCode = iota
	ErrNotFound
	ErrConflict
	ErrCodeTaken
	ErrBadRequest
	ErrInternal
)

// CodeOf maps a store error to its wire code.
func CodeOf(err error) ErrCode {
	switch {
	case err == nil:
		return ErrNone
	case errors.Is(err, party.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, party.ErrConflict):
		return ErrConflict
	case errors.Is(err, party.ErrCodeTaken):
		return ErrCodeTaken
	}
	return ErrInternal
}

// Err turns a wire code back into an error that matches the store sentinels
// with errors.Is.
func (c ErrCode) Err(msg string) error {
	var base error
	switch c {
	case ErrNone:
		return nil
	case ErrNotFound:
		base = party.ErrNotFound
	case ErrConflict:
		base = party.ErrConflict
	case ErrCodeTaken:
		base = party.ErrCodeTaken
	case ErrBadRequest:
		return fmt.Errorf("bad request: %s", msg)
	default:
		return fmt.Errorf("store error: %s", msg)
	}
	if msg == "" {
		return base
	}
	return fmt.Errorf("%s: %w", msg, base)
}

// ErrorResponse builds the response for a failed request.
func ErrorResponse(err error) Response {
	return Response{Code: CodeOf(err), Error: err.Error()}
}
