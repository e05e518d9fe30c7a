package core

import (
	"context"
	"testing"
	"time"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := NewStore(nil)
	s.SetClock(clock.Now)
	return s, clock
}

func insert(t *testing.T, s *Store, code string, maxPlayers int) party.Party {
	t.Helper()
	p, err := s.Insert(context.Background(), party.New("", code, "host", maxPlayers))
	require.NoError(t, err)
	return p
}

func nextEvent(t *testing.T, sub party.Subscription) party.Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "feed closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	return party.Event{}
}

func TestInsertAndFind(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := insert(t, s, "abcde", 2)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "ABCDE", p.Code)
	assert.Equal(t, party.StatusWaiting, p.Status)
	assert.NotZero(t, p.UpdatedAt)

	got, err := s.FindByCode(ctx, " abcde ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.Insert(ctx, party.New("", "ABCDE", "other", 2))
	assert.ErrorIs(t, err, party.ErrCodeTaken)

	_, err = s.Insert(ctx, party.New("", "AB1", "other", 2))
	assert.Error(t, err)

	_, err = s.FindByCode(ctx, "ZZZZZ")
	assert.ErrorIs(t, err, party.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s, _ := newTestStore(t)
	p := insert(t, s, "ABCDE", 4)
	p.PlayerIDs[0] = "mallory"
	p.PlayerPositions["host"] = 1

	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"host"}, got.PlayerIDs)
	assert.Equal(t, 0.0, got.PlayerPositions["host"])
}

func TestUpdateNotifiesSubscribers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	sub, err := s.Subscribe(ctx, p.ID)
	require.NoError(t, err)
	defer sub.Close()

	_, err = s.Update(ctx, p.ID, party.Patch{GuestID: party.Ptr("guest"), Status: party.Ptr(party.StatusPlaying)})
	require.NoError(t, err)

	ev := nextEvent(t, sub)
	assert.Equal(t, party.EventUpdate, ev.Kind)
	assert.Equal(t, "guest", ev.Party.GuestID)
	assert.Equal(t, 2, ev.Party.CurrentPlayers)
}

func TestFailedPreconditionLeavesRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	_, err := s.Update(ctx, p.ID, party.Patch{IfGuestID: party.Ptr(""), GuestID: party.Ptr("g1")})
	require.NoError(t, err)
	_, err = s.Update(ctx, p.ID, party.Patch{IfGuestID: party.Ptr(""), GuestID: party.Ptr("g2")})
	assert.ErrorIs(t, err, party.ErrConflict)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "g1", got.GuestID)
}

func TestSlowSubscriberSeesLatestUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	sub, err := s.Subscribe(ctx, p.ID)
	require.NoError(t, err)
	defer sub.Close()

	for i := 1; i <= 5; i++ {
		_, err := s.Update(ctx, p.ID, party.Patch{HostPaddleY: party.Ptr(float64(i * 10))})
		require.NoError(t, err)
	}
	ev := nextEvent(t, sub)
	assert.Equal(t, 50.0, ev.Party.HostPaddleY)
}

func TestDeleteIsDeliveredLast(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	sub, err := s.Subscribe(ctx, p.ID)
	require.NoError(t, err)

	_, err = s.Update(ctx, p.ID, party.Patch{HostScore: party.Ptr(3)})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, p.ID))

	ev := nextEvent(t, sub)
	assert.Equal(t, party.EventDelete, ev.Kind)
	assert.Equal(t, 3, ev.Party.HostScore)
	_, ok := <-sub.Events()
	assert.False(t, ok)

	assert.Zero(t, s.Subscribers(p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, party.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), party.ErrNotFound)

	// The code is free again.
	insert(t, s, "ABCDE", 2)
}

func TestClosingSubscriptionDetaches(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	sub, err := s.Subscribe(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Subscribers(p.ID))

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Zero(t, s.Subscribers(p.ID))

	_, err = s.Subscribe(ctx, "missing")
	assert.ErrorIs(t, err, party.ErrNotFound)
}

func TestListIsSortedByCode(t *testing.T) {
	s, _ := newTestStore(t)
	insert(t, s, "CCCCC", 2)
	insert(t, s, "AAAAA", 2)
	insert(t, s, "BBBBB", 4)

	var codes []string
	for _, p := range s.List() {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"AAAAA", "BBBBB", "CCCCC"}, codes)
}

func TestExpireReapsIdleAndFinished(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	idle := insert(t, s, "AAAAA", 2)
	done := insert(t, s, "BBBBB", 2)
	busy := insert(t, s, "CCCCC", 2)

	sub, err := s.Subscribe(ctx, idle.ID)
	require.NoError(t, err)

	_, err = s.Update(ctx, done.ID, party.Patch{Status: party.Ptr(party.StatusFinished)})
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	_, err = s.Update(ctx, busy.ID, party.Patch{HostPaddleY: party.Ptr(20.0)})
	require.NoError(t, err)

	j := NewJanitor(s, time.Minute, 30*time.Second, nil)
	assert.Equal(t, []string{"BBBBB"}, j.Sweep())

	clock.Advance(20 * time.Second)
	assert.Equal(t, []string{"AAAAA"}, j.Sweep())
	assert.Equal(t, party.EventDelete, nextEvent(t, sub).Kind)

	assert.Equal(t, 1, s.Len())
	_, err = s.Get(ctx, busy.ID)
	assert.NoError(t, err)
}

func TestFinishedTagFollowsStatus(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	p := insert(t, s, "ABCDE", 2)

	_, err := s.Update(ctx, p.ID, party.Patch{Status: party.Ptr(party.StatusFinished)})
	require.NoError(t, err)
	_, err = s.Update(ctx, p.ID, party.Patch{Status: party.Ptr(party.StatusWaiting)})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	assert.Empty(t, s.Expire(time.Hour, 30*time.Second))
}

func TestJanitorStopsWithContext(t *testing.T) {
	s, _ := newTestStore(t)
	j := NewJanitor(s, 30*time.Millisecond, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- j.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
