package protocol

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
)

var handle = newHandle()

func newHandle() *codec.MsgpackHandle {
	var mh codec.MsgpackHandle
	mh.WriteExt = true
	return &mh
}

// Envelope frames every message on the party store connection.
type Envelope struct {
	Type    MsgType `codec:"t"`
	Seq     uint32  `codec:"s"`
	Payload []byte  `codec:"p"`
}

// Marshal encodes v as msgpack.
func Marshal(v any) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, handle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

// Unmarshal decodes msgpack into v.
func Unmarshal(b []byte, v any) error {
	return codec.NewDecoderBytes(b, handle).Decode(v)
}

// Encode wraps payload in an envelope of type t.
func Encode(t MsgType, seq uint32, payload any) ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("encode: unknown message type %d", t)
	}
	if payload == nil {
		return nil, errors.New("encode: nil payload")
	}
	pb, err := Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Marshal(Envelope{Type: t, Seq: seq, Payload: pb})
}

// DecodeEnvelope reads the frame; the payload is decoded separately once the
// type is known.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode: empty frame")
	}
	var env Envelope
	if err := Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Type.Known() {
		return Envelope{}, fmt.Errorf("decode: unknown message type %d", env.Type)
	}
	return env, nil
}

// DecodePayload decodes the envelope payload into a T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Payload) == 0 {
		return out, fmt.Errorf("empty payload for %s", env.Type)
	}
	if err := Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return out, nil
}
