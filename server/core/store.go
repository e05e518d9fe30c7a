package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Olle-svg/ponggamebyolle/shared/netcomponents"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/tags"
	"github.com/decred/slog"
	"github.com/yohamta/donburi"
)

// Store is the in-process authoritative party store. Every record is an
// entity in a donburi world; the world is only touched with mu held.
type Store struct {
	mu     sync.Mutex
	world  donburi.World
	byID   map[string]donburi.Entity
	byCode map[string]string

	subs    map[string]map[uint64]*party.Feed
	nextSub uint64

	now func() time.Time
	log slog.Logger
}

var _ party.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore(log slog.Logger) *Store {
	if log == nil {
		log = slog.Disabled
	}
	return &Store{
		world:  donburi.NewWorld(),
		byID:   make(map[string]donburi.Entity),
		byCode: make(map[string]string),
		subs:   make(map[string]map[uint64]*party.Feed),
		now:    time.Now,
		log:    log,
	}
}

// SetClock replaces the time source; tests use it to age records.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store) Insert(_ context.Context, p party.Party) (party.Party, error) {
	p.Code = party.NormalizeCode(p.Code)
	if !party.ValidCode(p.Code) {
		return party.Party{}, fmt.Errorf("insert: invalid code %q", p.Code)
	}
	if p.HostID == "" {
		return party.Party{}, fmt.Errorf("insert: missing host")
	}
	if p.ID == "" {
		p.ID = party.NewID()
	}
	if p.Status == "" {
		p.Status = party.StatusWaiting
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCode[p.Code]; taken {
		return party.Party{}, fmt.Errorf("insert %s: %w", p.Code, party.ErrCodeTaken)
	}
	if _, dup := s.byID[p.ID]; dup {
		return party.Party{}, fmt.Errorf("insert %s: duplicate id: %w", p.ID, party.ErrConflict)
	}

	p = p.Clone()
	p.UpdatedAt = s.now().UnixMilli()

	entity := s.world.Create(tags.Party, netcomponents.NetParty)
	netcomponents.NetParty.SetValue(s.world.Entry(entity), netcomponents.NetPartyData{Party: p})
	s.byID[p.ID] = entity
	s.byCode[p.Code] = p.ID

	s.log.Infof("Party %s created by %s (max %d players)", p.Code, p.HostID, p.MaxPlayers)
	return p.Clone(), nil
}

func (s *Store) Get(_ context.Context, id string) (party.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entry(id)
	if err != nil {
		return party.Party{}, err
	}
	return netcomponents.NetParty.Get(entry).Party.Clone(), nil
}

func (s *Store) FindByCode(ctx context.Context, code string) (party.Party, error) {
	s.mu.Lock()
	id, ok := s.byCode[party.NormalizeCode(code)]
	s.mu.Unlock()
	if !ok {
		return party.Party{}, fmt.Errorf("code %s: %w", party.NormalizeCode(code), party.ErrNotFound)
	}
	return s.Get(ctx, id)
}

func (s *Store) Update(_ context.Context, id string, patch party.Patch) (party.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entry(id)
	if err != nil {
		return party.Party{}, err
	}
	data := netcomponents.NetParty.Get(entry)

	next := data.Party.Clone()
	if err := patch.Apply(&next); err != nil {
		return party.Party{}, fmt.Errorf("update %s: %w", id, err)
	}
	next.UpdatedAt = s.now().UnixMilli()
	data.Party = next

	if next.Status == party.StatusFinished && !entry.HasComponent(tags.Finished) {
		entry.AddComponent(tags.Finished)
	} else if next.Status != party.StatusFinished && entry.HasComponent(tags.Finished) {
		entry.RemoveComponent(tags.Finished)
	}

	for _, f := range s.subs[id] {
		f.Push(party.Event{Kind: party.EventUpdate, Party: next.Clone()})
	}
	return next.Clone(), nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	last, feeds, err := s.removeLocked(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Infof("Party %s deleted", last.Code)
	for _, f := range feeds {
		f.Push(party.Event{Kind: party.EventDelete, Party: last.Clone()})
	}
	return nil
}

// removeLocked drops the record and detaches its subscribers. The caller
// pushes the delete event after releasing mu.
func (s *Store) removeLocked(id string) (party.Party, []*party.Feed, error) {
	entry, err := s.entry(id)
	if err != nil {
		return party.Party{}, nil, err
	}
	last := netcomponents.NetParty.Get(entry).Party
	s.world.Remove(entry.Entity())
	delete(s.byID, id)
	delete(s.byCode, last.Code)

	feeds := make([]*party.Feed, 0, len(s.subs[id]))
	for _, f := range s.subs[id] {
		feeds = append(feeds, f)
	}
	delete(s.subs, id)
	return last, feeds, nil
}

func (s *Store) Subscribe(_ context.Context, id string) (party.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.entry(id); err != nil {
		return nil, err
	}

	s.nextSub++
	key := s.nextSub
	feed := party.NewFeed(func() { s.unsubscribe(id, key) })
	if s.subs[id] == nil {
		s.subs[id] = make(map[uint64]*party.Feed)
	}
	s.subs[id][key] = feed
	return feed, nil
}

func (s *Store) unsubscribe(id string, key uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs[id], key)
	if len(s.subs[id]) == 0 {
		delete(s.subs, id)
	}
}

// List returns every record ordered by code.
func (s *Store) List() []party.Party {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]party.Party, 0, len(s.byID))
	netcomponents.NetParty.Each(s.world, func(entry *donburi.Entry) {
		out = append(out, netcomponents.NetParty.Get(entry).Party.Clone())
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Subscribers returns the number of open feeds on id.
func (s *Store) Subscribers(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[id])
}

// Expire deletes records idle for at least ttl, and finished records idle for
// at least grace. It returns the codes it removed.
func (s *Store) Expire(ttl, grace time.Duration) []string {
	s.mu.Lock()
	now := s.now()
	var stale []string
	netcomponents.NetParty.Each(s.world, func(entry *donburi.Entry) {
		p := netcomponents.NetParty.Get(entry).Party
		idle := now.Sub(time.UnixMilli(p.UpdatedAt))
		if idle >= ttl || (entry.HasComponent(tags.Finished) && idle >= grace) {
			stale = append(stale, p.ID)
		}
	})

	type removed struct {
		last  party.Party
		feeds []*party.Feed
	}
	var gone []removed
	for _, id := range stale {
		last, feeds, err := s.removeLocked(id)
		if err == nil {
			gone = append(gone, removed{last, feeds})
		}
	}
	s.mu.Unlock()

	codes := make([]string, 0, len(gone))
	for _, g := range gone {
		for _, f := range g.feeds {
			f.Push(party.Event{Kind: party.EventDelete, Party: g.last.Clone()})
		}
		codes = append(codes, g.last.Code)
	}
	return codes
}

func (s *Store) entry(id string) (*donburi.Entry, error) {
	entity, ok := s.byID[id]
	if !ok || !s.world.Valid(entity) {
		return nil, fmt.Errorf("party %s: %w", id, party.ErrNotFound)
	}
	return s.world.Entry(entity), nil
}
