package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/decred/slog"
)

// Role is what a participant may write to the party record.
type Role int

const (
	RoleNone Role = iota
	RoleHost
	RoleGuest
)

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RoleGuest:
		return "guest"
	}
	return "none"
}

// DefaultCodeAttempts bounds code collision retries in CreateParty.
const DefaultCodeAttempts = 5

// Session is one participant's view of a party: it creates or joins the
// record, writes the fields its role owns and caches the latest snapshot
// delivered by the change feed.
type Session struct {
	store    party.Store
	playerID string
	log      slog.Logger
	newCode  func() (string, error)

	CodeAttempts int

	mu       sync.Mutex
	partyID  string
	code     string
	role     Role
	snapshot party.Party
	version  uint64
	sub      party.Subscription
	done     chan struct{}
	err      error
	left     bool
}

func NewSession(store party.Store, playerID string, log slog.Logger) *Session {
	if log == nil {
		log = slog.Disabled
	}
	return &Session{
		store:        store,
		playerID:     playerID,
		log:          log,
		newCode:      party.GenerateCode,
		CodeAttempts: DefaultCodeAttempts,
	}
}

func (s *Session) PlayerID() string {
	return s.playerID
}

func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// IsHost reports whether this participant owns the ball and the scores.
func (s *Session) IsHost() bool {
	return s.Role() == RoleHost
}

// Snapshot returns the latest known record and a counter that grows with
// every update received.
func (s *Session) Snapshot() (party.Party, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone(), s.version
}

// Done is closed when the session ends: the host went away, the store
// connection was lost, or Leave was called.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		s.done = make(chan struct{})
	}
	return s.done
}

// Err returns why the session ended; nil after a plain Leave.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CreateParty inserts a new waiting party hosted by this participant and
// returns its code. maxPlayers above two creates a battle royale.
func (s *Session) CreateParty(ctx context.Context, maxPlayers int) (string, error) {
	attempts := max(s.CodeAttempts, 1)
	for range attempts {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCreateFailed, err)
		}
		rec, err := s.store.Insert(ctx, party.New(party.NewID(), code, s.playerID, maxPlayers))
		if errors.Is(err, party.ErrCodeTaken) {
			s.log.Debugf("Party code %s taken, retrying", code)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCreateFailed, err)
		}
		s.attach(rec, RoleHost)
		s.log.Infof("Created party %s (max %d players)", rec.Code, rec.MaxPlayers)
		return rec.Code, nil
	}
	return "", fmt.Errorf("%w: no free code after %d attempts", ErrCreateFailed, attempts)
}

// JoinParty takes the open slot of the party with the given code. A full
// party is left untouched.
func (s *Session) JoinParty(ctx context.Context, code string) (party.Party, error) {
	code = party.NormalizeCode(code)
	rec, err := s.store.FindByCode(ctx, code)
	if errors.Is(err, party.ErrNotFound) {
		return party.Party{}, fmt.Errorf("%w: %s", ErrPartyNotFound, code)
	}
	if err != nil {
		return party.Party{}, fmt.Errorf("%w: %v", ErrJoinFailed, err)
	}

	if rec.HasPlayer(s.playerID) {
		role := RoleGuest
		if rec.HostID == s.playerID {
			role = RoleHost
		}
		s.attach(rec, role)
		return rec, nil
	}
	if rec.IsFull() {
		return party.Party{}, fmt.Errorf("%w: %s", ErrPartyFull, code)
	}

	var patch party.Patch
	if rec.IsBattleRoyale() {
		if rec.Status != party.StatusWaiting {
			return party.Party{}, fmt.Errorf("%w: %s already started", ErrPartyFull, code)
		}
		patch = party.Patch{IfOpenSlot: true, AddPlayer: s.playerID}
	} else {
		patch = party.Patch{
			IfGuestID: party.Ptr(""),
			GuestID:   party.Ptr(s.playerID),
			Status:    party.Ptr(party.StatusPlaying),
		}
	}

	updated, err := s.store.Update(ctx, rec.ID, patch)
	switch {
	case errors.Is(err, party.ErrConflict):
		return party.Party{}, fmt.Errorf("%w: %s", ErrPartyFull, code)
	case errors.Is(err, party.ErrNotFound):
		return party.Party{}, fmt.Errorf("%w: %s", ErrPartyNotFound, code)
	case err != nil:
		return party.Party{}, fmt.Errorf("%w: %v", ErrJoinFailed, err)
	}

	s.attach(updated, RoleGuest)
	s.log.Infof("Joined party %s as %s", updated.Code, s.playerID)
	return updated, nil
}

func (s *Session) attach(rec party.Party, role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partyID = rec.ID
	s.code = rec.Code
	s.role = role
	s.snapshot = rec
	s.version++
	s.err = nil
	s.left = false
	s.done = make(chan struct{})
}

// Subscribe starts consuming the change feed. Updates replace the cached
// snapshot wholesale; a delete ends the session with ErrHostDisconnected.
func (s *Session) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	id, active := s.partyID, s.sub
	s.mu.Unlock()
	if id == "" {
		return ErrNotInParty
	}
	if active != nil {
		return nil
	}

	sub, err := s.store.Subscribe(ctx, id)
	if errors.Is(err, party.ErrNotFound) {
		s.finish(ErrHostDisconnected)
		return ErrHostDisconnected
	}
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", id, err)
	}

	// Catch up on writes made between create/join and now.
	rec, err := s.store.Get(ctx, id)
	s.mu.Lock()
	s.sub = sub
	if err == nil {
		s.snapshot = rec
		s.version++
	}
	s.mu.Unlock()
	go s.consume(sub)
	return nil
}

func (s *Session) consume(sub party.Subscription) {
	for ev := range sub.Events() {
		switch ev.Kind {
		case party.EventUpdate:
			s.mu.Lock()
			s.snapshot = ev.Party
			s.version++
			s.mu.Unlock()
		case party.EventDelete:
			s.log.Infof("Party %s was deleted", ev.Party.Code)
			s.finish(ErrHostDisconnected)
			return
		}
	}

	s.mu.Lock()
	left := s.left
	s.mu.Unlock()
	if !left {
		s.finish(ErrStoreClosed)
	}
}

// finish ends the session once with err.
func (s *Session) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		s.done = make(chan struct{})
	}
	select {
	case <-s.done:
		return
	default:
	}
	s.err = err
	close(s.done)
}

func (s *Session) current() (string, Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partyID == "" || s.left {
		return "", RoleNone, ErrNotInParty
	}
	return s.partyID, s.role, nil
}

func (s *Session) update(ctx context.Context, patch party.Patch) error {
	id, _, err := s.current()
	if err != nil {
		return err
	}
	_, err = s.store.Update(ctx, id, patch)
	return err
}

func (s *Session) hostUpdate(ctx context.Context, patch party.Patch) error {
	id, role, err := s.current()
	if err != nil {
		return err
	}
	if role != RoleHost {
		return ErrNotHost
	}
	_, err = s.store.Update(ctx, id, patch)
	return err
}

// UpdatePaddle publishes this participant's paddle. In a 1v1 party pos is a
// percentage of the arena height; in a battle royale it is the -1..1
// position along the participant's edge.
func (s *Session) UpdatePaddle(ctx context.Context, pos float64) error {
	snap, _ := s.Snapshot()
	if snap.IsBattleRoyale() {
		return s.update(ctx, party.Patch{PlayerPosition: &party.PlayerPosition{ID: s.playerID, Pos: pos}})
	}
	if s.Role() == RoleHost {
		return s.update(ctx, party.Patch{HostPaddleY: party.Ptr(pos)})
	}
	return s.update(ctx, party.Patch{GuestPaddleY: party.Ptr(pos)})
}

func (s *Session) UpdateBall(ctx context.Context, ball party.BallSnapshot) error {
	return s.hostUpdate(ctx, party.Patch{Ball: &ball})
}

func (s *Session) UpdateScore(ctx context.Context, host, guest int) error {
	return s.hostUpdate(ctx, party.Patch{HostScore: party.Ptr(host), GuestScore: party.Ptr(guest)})
}

func (s *Session) UpdateStatus(ctx context.Context, status party.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.update(ctx, party.Patch{Status: party.Ptr(status)})
}

// Eliminate marks a battle royale participant as knocked out.
func (s *Session) Eliminate(ctx context.Context, playerID string) error {
	return s.hostUpdate(ctx, party.Patch{Eliminate: playerID})
}

// StartMatch moves a waiting party to playing.
func (s *Session) StartMatch(ctx context.Context) error {
	id, role, err := s.current()
	if err != nil {
		return err
	}
	if role != RoleHost {
		return ErrNotHost
	}
	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, party.ErrNotFound) {
		return ErrPartyNotFound
	}
	if err != nil {
		return err
	}
	if rec.CurrentPlayers < 2 {
		return ErrNotEnoughPlayers
	}
	_, err = s.store.Update(ctx, id, party.Patch{Status: party.Ptr(party.StatusPlaying)})
	return err
}

// Leave unsubscribes and gives up this participant's place. The host deletes
// the record, a guest frees its slot. Calling it again does nothing.
func (s *Session) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.partyID == "" || s.left {
		s.mu.Unlock()
		return nil
	}
	s.left = true
	id, role, sub, snap := s.partyID, s.role, s.sub, s.snapshot
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
	defer s.finish(nil)

	var err error
	switch {
	case role == RoleHost:
		err = s.store.Delete(ctx, id)
	case snap.IsBattleRoyale() && snap.Status == party.StatusWaiting:
		_, err = s.store.Update(ctx, id, party.Patch{RemovePlayer: s.playerID})
	case snap.IsBattleRoyale():
		// Slots are fixed once the match runs; a quitter is knocked out.
		_, err = s.store.Update(ctx, id, party.Patch{Eliminate: s.playerID})
	default:
		_, err = s.store.Update(ctx, id, party.Patch{
			IfGuestID: party.Ptr(s.playerID),
			GuestID:   party.Ptr(""),
			Status:    party.Ptr(party.StatusWaiting),
		})
	}
	// The record may already be gone, or our slot already taken back.
	if errors.Is(err, party.ErrNotFound) || errors.Is(err, party.ErrConflict) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("leave %s: %w", id, err)
	}
	s.log.Infof("Left party %s as %s", snap.Code, role)
	return nil
}
