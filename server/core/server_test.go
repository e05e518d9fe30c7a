package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Olle-svg/ponggamebyolle/network"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*Store, *Server, *httptest.Server) {
	t.Helper()
	store := NewStore(nil)
	srv := NewServer(store, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return store, srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *network.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := network.Dial(ctx, ts.URL, 2*time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRemoteStoreRoundTrip(t *testing.T) {
	store, _, ts := startServer(t)
	c := dial(t, ts)
	ctx := context.Background()

	p, err := c.Insert(ctx, party.New("", "ABCDE", "host", 2))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	got, err := c.FindByCode(ctx, "abcde")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	updated, err := c.Update(ctx, p.ID, party.Patch{GuestID: party.Ptr("guest"), HostScore: party.Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "guest", updated.GuestID)
	assert.Equal(t, 2, updated.HostScore)

	_, err = c.Insert(ctx, party.New("", "ABCDE", "other", 2))
	assert.ErrorIs(t, err, party.ErrCodeTaken)

	_, err = c.Update(ctx, p.ID, party.Patch{IfGuestID: party.Ptr(""), GuestID: party.Ptr("late")})
	assert.ErrorIs(t, err, party.ErrConflict)

	require.NoError(t, c.Delete(ctx, p.ID))
	_, err = c.Get(ctx, p.ID)
	assert.ErrorIs(t, err, party.ErrNotFound)
}

func TestRemoteSubscriptionDeliversUpdatesThenDelete(t *testing.T) {
	_, _, ts := startServer(t)
	host := dial(t, ts)
	guest := dial(t, ts)
	ctx := context.Background()

	p, err := host.Insert(ctx, party.New("", "ABCDE", "host", 2))
	require.NoError(t, err)

	sub, err := guest.Subscribe(ctx, p.ID)
	require.NoError(t, err)

	_, err = host.Update(ctx, p.ID, party.Patch{HostPaddleY: party.Ptr(42.0)})
	require.NoError(t, err)
	ev := nextEvent(t, sub)
	assert.Equal(t, party.EventUpdate, ev.Kind)
	assert.Equal(t, 42.0, ev.Party.HostPaddleY)

	require.NoError(t, host.Delete(ctx, p.ID))
	ev = nextEvent(t, sub)
	assert.Equal(t, party.EventDelete, ev.Kind)

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("feed not closed after delete")
	}
}

func TestDisconnectDropsServerSubscriptions(t *testing.T) {
	store, srv, ts := startServer(t)
	c := dial(t, ts)
	ctx := context.Background()

	p, err := c.Insert(ctx, party.New("", "ABCDE", "host", 2))
	require.NoError(t, err)
	_, err = c.Subscribe(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Subscribers(p.ID))

	require.NoError(t, c.Close())
	assert.Eventually(t, func() bool {
		return store.Subscribers(p.ID) == 0 && srv.ConnCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, err = c.Get(ctx, p.ID)
	assert.ErrorIs(t, err, network.ErrStoreClosed)
}

func TestListOnlyShowsOpenParties(t *testing.T) {
	store, _, ts := startServer(t)
	ctx := context.Background()

	open, err := store.Insert(ctx, party.New("", "AAAAA", "h1", 4))
	require.NoError(t, err)
	full, err := store.Insert(ctx, party.New("", "BBBBB", "h2", 2))
	require.NoError(t, err)
	_, err = store.Update(ctx, full.ID, party.Patch{GuestID: party.Ptr("g")})
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/parties")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var list []PartySummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, PartySummary{Code: open.Code, Mode: "battle_royale", CurrentPlayers: 1, MaxPlayers: 4}, list[0])
}

func TestClientListingMatchesServer(t *testing.T) {
	store, _, ts := startServer(t)
	ctx := context.Background()
	_, err := store.Insert(ctx, party.New("", "CCCCC", "h1", 2))
	require.NoError(t, err)

	list, err := network.FetchOpenParties(ctx, ts.Client(), ts.URL)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, network.OpenParty{Code: "CCCCC", Mode: "1v1", CurrentPlayers: 1, MaxPlayers: 2}, list[0])
}

func TestHealth(t *testing.T) {
	store, _, ts := startServer(t)
	_, err := store.Insert(context.Background(), party.New("", "AAAAA", "h1", 2))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Parties)
}
