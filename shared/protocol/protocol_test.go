package protocol

import (
	"testing"

	"github.com/Olle-svg/ponggamebyolle/shared/messages"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRequestSurvivesTheWire(t *testing.T) {
	req := messages.UpdateRequest{
		ID: "abc",
		Patch: party.Patch{
			GuestID:    party.Ptr(""),
			HostScore:  party.Ptr(0),
			Ball:       &party.BallSnapshot{X: 12.5, Y: 50, DX: -6, DY: 1.5},
			IfGuestID:  party.Ptr("g1"),
			IfOpenSlot: true,
		},
	}
	b, err := Encode(MsgUpdate, 7, req)
	require.NoError(t, err)

	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, MsgUpdate, env.Type)
	assert.Equal(t, uint32(7), env.Seq)

	got, err := DecodePayload[messages.UpdateRequest](env)
	require.NoError(t, err)
	require.NotNil(t, got.Patch.GuestID, "clearing the guest must not be dropped")
	assert.Equal(t, "", *got.Patch.GuestID)
	require.NotNil(t, got.Patch.HostScore)
	assert.Equal(t, 0, *got.Patch.HostScore)
	assert.Nil(t, got.Patch.GuestScore)
	assert.Equal(t, req.Patch.Ball, got.Patch.Ball)
	assert.True(t, got.Patch.IfOpenSlot)
}

func TestEventCarriesFullRecord(t *testing.T) {
	p := party.New("id", "ABCDE", "host", 4)
	require.NoError(t, party.Patch{AddPlayer: "p2", Eliminate: "p2"}.Apply(&p))

	b, err := Encode(MsgEvent, 0, messages.PartyEvent{ID: p.ID, Event: party.Event{Kind: party.EventUpdate, Party: p}})
	require.NoError(t, err)
	env, err := DecodeEnvelope(b)
	require.NoError(t, err)
	got, err := DecodePayload[messages.PartyEvent](env)
	require.NoError(t, err)

	assert.Equal(t, party.EventUpdate, got.Event.Kind)
	assert.Equal(t, []string{"host", "p2"}, got.Event.Party.PlayerIDs)
	assert.Equal(t, []string{"p2"}, got.Event.Party.Eliminated)
	assert.Equal(t, party.PaddleUnset, got.Event.Party.GuestPaddleY)
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	assert.Error(t, err)

	_, err = Encode(MsgType(99), 1, messages.GetRequest{ID: "x"})
	assert.Error(t, err)

	b, err := Marshal(Envelope{Type: MsgType(99)})
	require.NoError(t, err)
	_, err = DecodeEnvelope(b)
	assert.Error(t, err)

	_, err = DecodePayload[messages.GetRequest](Envelope{Type: MsgGet})
	assert.Error(t, err)
}

func TestErrCodesRoundTrip(t *testing.T) {
	for _, sentinel := range []error{party.ErrNotFound, party.ErrConflict, party.ErrCodeTaken} {
		resp := messages.ErrorResponse(sentinel)
		assert.ErrorIs(t, resp.Code.Err(resp.Error), sentinel)
	}
	assert.NoError(t, messages.ErrNone.Err(""))
}
