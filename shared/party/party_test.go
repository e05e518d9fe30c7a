package party

import (
	"io"
	"regexp"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParty(t *testing.T) {
	p := New("id-1", "ABCDE", "host", 2)
	assert.Equal(t, StatusWaiting, p.Status)
	assert.Equal(t, 1, p.CurrentPlayers)
	assert.Equal(t, PaddleUnset, p.GuestPaddleY)
	assert.False(t, p.IsBattleRoyale())
	assert.False(t, p.IsFull())

	br := New("id-2", "FGHJK", "host", 4)
	assert.True(t, br.IsBattleRoyale())
	assert.Equal(t, []string{"host"}, br.PlayerIDs)
	assert.Equal(t, 1, br.CurrentPlayers)
}

func TestPatchTouchesOnlyItsFields(t *testing.T) {
	p := New("id", "ABCDE", "host", 2)
	require.NoError(t, Patch{GuestID: Ptr("guest"), Status: Ptr(StatusPlaying)}.Apply(&p))
	require.NoError(t, Patch{GuestPaddleY: Ptr(42.0)}.Apply(&p))
	require.NoError(t, Patch{Ball: &BallSnapshot{X: 10, Y: 20, DX: 3, DY: -1}}.Apply(&p))

	assert.Equal(t, "guest", p.GuestID)
	assert.Equal(t, StatusPlaying, p.Status)
	assert.Equal(t, 42.0, p.GuestPaddleY)
	assert.Equal(t, PaddleUnset, p.HostPaddleY)
	assert.Equal(t, 10.0, p.BallX)
	assert.Equal(t, -1.0, p.BallDY)
	assert.Equal(t, 2, p.CurrentPlayers)

	require.NoError(t, Patch{HostScore: Ptr(0), GuestID: Ptr("")}.Apply(&p))
	assert.Empty(t, p.GuestID)
	assert.Equal(t, 1, p.CurrentPlayers)
}

func TestPatchPreconditionLeavesRecordUntouched(t *testing.T) {
	p := New("id", "ABCDE", "host", 2)
	p.GuestID = "first"
	before := p.Clone()

	err := Patch{GuestID: Ptr("second"), Status: Ptr(StatusPlaying), IfGuestID: Ptr("")}.Apply(&p)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, before, p)

	br := New("id", "ABCDE", "a", 3)
	require.NoError(t, Patch{AddPlayer: "b", IfOpenSlot: true}.Apply(&br))
	require.NoError(t, Patch{AddPlayer: "c", IfOpenSlot: true}.Apply(&br))
	err = Patch{AddPlayer: "d", IfOpenSlot: true}.Apply(&br)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, []string{"a", "b", "c"}, br.PlayerIDs)
}

func TestPatchRejectsUnknownStatus(t *testing.T) {
	p := New("id", "ABCDE", "host", 2)
	assert.Error(t, Patch{Status: Ptr(Status("exploded"))}.Apply(&p))
	assert.Equal(t, StatusWaiting, p.Status)
}

func TestEliminationIsMonotonic(t *testing.T) {
	p := New("id", "ABCDE", "a", 4)
	require.NoError(t, Patch{AddPlayer: "b"}.Apply(&p))
	require.NoError(t, Patch{Eliminate: "b"}.Apply(&p))
	require.NoError(t, Patch{Eliminate: "b"}.Apply(&p))
	require.NoError(t, Patch{Eliminate: "stranger"}.Apply(&p))
	assert.Equal(t, []string{"b"}, p.Eliminated)
	assert.True(t, p.IsEliminated("b"))

	require.NoError(t, Patch{PlayerPosition: &PlayerPosition{ID: "a", Pos: -0.5}}.Apply(&p))
	assert.Equal(t, -0.5, p.PlayerPositions["a"])
}

func TestPaddlePercentRoundTrip(t *testing.T) {
	const height = 500.0
	for _, y := range []float64{0, 1, 37.5, 200, 399.99, 400} {
		back := FromPercent(ToPercent(y, height), height)
		assert.InDelta(t, y, back, height*0.01)
	}
	// Different canvas heights agree on the relative position.
	pct := ToPercent(200, 500)
	assert.InDelta(t, 240, FromPercent(pct, 600), 1e-9)

	assert.Equal(t, 150.0, PaddleFromPercent(PaddleUnset, height, 150))
	assert.Equal(t, 0.0, PaddleFromPercent(0, height, 150))
}

func TestCodes(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		assert.True(t, ValidCode(code), code)
	}
	assert.Equal(t, "ABCDE", NormalizeCode("  abcde "))
	assert.True(t, ValidCode("abcde"))
	assert.False(t, ValidCode("ABCD0"))
	assert.False(t, ValidCode("ABC"))

	assert.Regexp(t, regexp.MustCompile(`^player_[0-9a-f]{9}$`), NewPlayerID())
}

func TestGenerateCodeReportsEntropyFailure(t *testing.T) {
	_, err := GenerateCodeFrom(iotest.ErrReader(io.ErrUnexpectedEOF))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	code, err := GenerateCodeFrom(strings.NewReader(strings.Repeat("\x00", 64)))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("A", CodeLength), code)
}

func TestFeedKeepsLatestAndEndsOnDelete(t *testing.T) {
	closed := 0
	f := NewFeed(func() { closed++ })

	f.Push(Event{Kind: EventUpdate, Party: Party{HostScore: 1}})
	f.Push(Event{Kind: EventUpdate, Party: Party{HostScore: 2}})
	ev := <-f.Events()
	assert.Equal(t, 2, ev.Party.HostScore)

	f.Push(Event{Kind: EventUpdate, Party: Party{HostScore: 3}})
	f.Push(Event{Kind: EventDelete})
	ev, ok := <-f.Events()
	require.True(t, ok)
	assert.Equal(t, EventDelete, ev.Kind)
	_, ok = <-f.Events()
	assert.False(t, ok)

	f.Push(Event{Kind: EventUpdate})
	require.NoError(t, f.Close())
	assert.Equal(t, 1, closed)
}
