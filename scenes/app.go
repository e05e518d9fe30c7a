package scenes

import (
	"context"
	"errors"
	"fmt"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/network"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/Olle-svg/ponggamebyolle/systems"
	"github.com/decred/slog"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// App is the state every scene shares: the saved profile, audio, input and
// where the party daemon lives.
type App struct {
	Changer    SceneChanger
	Logs       *logging.Loggers
	ServerAddr string
	Items      systems.ItemStore
	Profile    systems.Profile
	Sound      *systems.SoundPlayer
	Keys       systems.KeySource
}

func (a *App) log(tag string) slog.Logger {
	if a.Logs == nil {
		return slog.Disabled
	}
	return a.Logs.Logger(tag)
}

// SaveProfile persists the profile, logging failures.
func (a *App) SaveProfile() {
	if err := systems.SaveProfile(a.Items, a.Profile); err != nil {
		a.log(logging.Game).Warnf("Could not save profile: %v", err)
	}
}

// link is one connection to the party daemon and the session on it.
type link struct {
	client    *network.Client
	session   *network.Session
	publisher *network.Publisher
	log       slog.Logger
}

func dialLink(ctx context.Context, app *App) (*link, error) {
	log := app.log(logging.Net)
	client, err := network.Dial(ctx, app.ServerAddr, cfg.Net.RequestTimeout, log)
	if err != nil {
		return nil, err
	}
	session := network.NewSession(client, app.Profile.PlayerID, app.log(logging.Party))
	session.CodeAttempts = cfg.Net.CodeAttempts
	return &link{client: client, session: session, log: log}, nil
}

// hostParty dials and creates a party with room for maxPlayers.
func hostParty(app *App, maxPlayers int) (*link, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Net.RequestTimeout)
	defer cancel()

	l, err := dialLink(ctx, app)
	if err != nil {
		return nil, err
	}
	if _, err := l.session.CreateParty(ctx, maxPlayers); err != nil {
		l.close()
		return nil, err
	}
	if err := l.session.Subscribe(ctx); err != nil {
		l.close()
		return nil, err
	}
	return l, nil
}

// joinParty dials and joins the party with the given code.
func joinParty(app *App, code string) (*link, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Net.RequestTimeout)
	defer cancel()

	l, err := dialLink(ctx, app)
	if err != nil {
		return nil, err
	}
	if _, err := l.session.JoinParty(ctx, code); err != nil {
		l.close()
		return nil, err
	}
	if err := l.session.Subscribe(ctx); err != nil {
		l.close()
		return nil, err
	}
	return l, nil
}

// startPublishing begins the asynchronous writes of a match.
func (l *link) startPublishing() *network.Publisher {
	if l.publisher == nil {
		l.publisher = network.NewPublisher(l.session, cfg.Net.RequestTimeout, l.log)
	}
	return l.publisher
}

// close leaves the party and hangs up. Safe to call more than once.
func (l *link) close() {
	if l.publisher != nil {
		l.publisher.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Net.RequestTimeout)
	defer cancel()
	if err := l.session.Leave(ctx); err != nil {
		l.log.Debugf("Leave: %v", err)
	}
	_ = l.client.Close()
}

// closeAsync runs close off the frame loop.
func (l *link) closeAsync() {
	go l.close()
}

// endReason is the message shown when a session ended on its own.
func endReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, network.ErrHostDisconnected):
		return "The host left the party"
	case errors.Is(err, network.ErrStoreClosed):
		return "Lost connection to the party server"
	}
	return fmt.Sprintf("Disconnected: %v", err)
}

// userError turns a create or join failure into something to show.
func userError(err error) string {
	switch {
	case errors.Is(err, network.ErrPartyNotFound):
		return "No party with that code"
	case errors.Is(err, network.ErrPartyFull):
		return "That party is full"
	case errors.Is(err, network.ErrCreateFailed):
		return "Could not create a party"
	case errors.Is(err, network.ErrStoreClosed), errors.Is(err, context.DeadlineExceeded):
		return "Party server unreachable"
	}
	return err.Error()
}

// pending carries the result of a background operation to the frame loop.
type pending[T any] struct {
	ch chan result[T]
}

type result[T any] struct {
	val T
	err error
}

func goPending[T any](fn func() (T, error)) *pending[T] {
	p := &pending[T]{ch: make(chan result[T], 1)}
	go func() {
		v, err := fn()
		p.ch <- result[T]{v, err}
	}()
	return p
}

// poll returns the result once it is ready.
func (p *pending[T]) poll() (T, bool, error) {
	select {
	case r := <-p.ch:
		return r.val, true, r.err
	default:
		var zero T
		return zero, false, nil
	}
}
