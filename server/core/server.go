package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Olle-svg/ponggamebyolle/shared/messages"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/protocol"
	"github.com/coder/websocket"
	"github.com/decred/slog"
)

const (
	maxFrameSize = 1 << 16 // 64 KB
	writeTimeout = 5 * time.Second
)

// Server exposes a Store over websocket connections speaking the msgpack
// envelope protocol, plus a small HTTP surface for health and listing.
type Server struct {
	store *Store
	log   slog.Logger

	mu    sync.RWMutex
	conns map[*clientConn]struct{}
}

// NewServer wraps store.
func NewServer(store *Store, log slog.Logger) *Server {
	if log == nil {
		log = slog.Disabled
	}
	return &Server{
		store: store,
		log:   log,
		conns: make(map[*clientConn]struct{}),
	}
}

// Handler returns the routes of the party daemon.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.ServeWS)
	mux.HandleFunc("GET /parties", ListParties(s.store, s.log))
	mux.HandleFunc("GET /health", Health(s))
	return mux
}

// ConnCount returns the number of connected clients.
func (s *Server) ConnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// clientConn is one websocket client and the feeds it subscribed to.
type clientConn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]party.Subscription
}

// ServeWS upgrades the request and serves it until the peer goes away.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warnf("Websocket accept from %s failed: %v", r.RemoteAddr, err)
		return
	}
	ws.SetReadLimit(maxFrameSize)

	c := &clientConn{ws: ws, subs: make(map[string]party.Subscription)}
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
	s.log.Debugf("Client %s connected", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		c.closeSubs()
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = ws.CloseNow()
		s.log.Debugf("Client %s disconnected", r.RemoteAddr)
	}()

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				s.log.Debugf("Read from %s: %v", r.RemoteAddr, err)
			}
			return
		}

		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			s.log.Warnf("Bad frame from %s: %v", r.RemoteAddr, err)
			continue
		}
		if !env.Type.IsRequest() {
			s.log.Warnf("Unexpected %s from %s", env.Type, r.RemoteAddr)
			continue
		}

		resp := s.handle(ctx, c, env)
		if err := c.send(ctx, protocol.MsgResponse, env.Seq, resp); err != nil {
			s.log.Debugf("Write to %s: %v", r.RemoteAddr, err)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, c *clientConn, env protocol.Envelope) messages.Response {
	switch env.Type {
	case protocol.MsgInsert:
		req, err := protocol.DecodePayload[messages.InsertRequest](env)
		if err != nil {
			return badRequest(err)
		}
		return partyResponse(s.store.Insert(ctx, req.Party))

	case protocol.MsgGet:
		req, err := protocol.DecodePayload[messages.GetRequest](env)
		if err != nil {
			return badRequest(err)
		}
		return partyResponse(s.store.Get(ctx, req.ID))

	case protocol.MsgFindByCode:
		req, err := protocol.DecodePayload[messages.FindByCodeRequest](env)
		if err != nil {
			return badRequest(err)
		}
		return partyResponse(s.store.FindByCode(ctx, req.Code))

	case protocol.MsgUpdate:
		req, err := protocol.DecodePayload[messages.UpdateRequest](env)
		if err != nil {
			return badRequest(err)
		}
		return partyResponse(s.store.Update(ctx, req.ID, req.Patch))

	case protocol.MsgDelete:
		req, err := protocol.DecodePayload[messages.DeleteRequest](env)
		if err != nil {
			return badRequest(err)
		}
		if err := s.store.Delete(ctx, req.ID); err != nil {
			return messages.ErrorResponse(err)
		}
		return messages.Response{}

	case protocol.MsgSubscribe:
		req, err := protocol.DecodePayload[messages.SubscribeRequest](env)
		if err != nil {
			return badRequest(err)
		}
		return s.subscribe(ctx, c, req.ID)

	case protocol.MsgUnsubscribe:
		req, err := protocol.DecodePayload[messages.UnsubscribeRequest](env)
		if err != nil {
			return badRequest(err)
		}
		c.unsubscribe(req.ID)
		return messages.Response{}
	}
	return badRequest(fmt.Errorf("unhandled %s", env.Type))
}

// subscribe opens a store feed and forwards it to the connection until the
// feed ends or the connection closes.
func (s *Server) subscribe(ctx context.Context, c *clientConn, id string) messages.Response {
	c.mu.Lock()
	_, already := c.subs[id]
	c.mu.Unlock()
	if already {
		return partyResponse(s.store.Get(ctx, id))
	}

	sub, err := s.store.Subscribe(ctx, id)
	if err != nil {
		return messages.ErrorResponse(err)
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		_ = sub.Close()
		return messages.ErrorResponse(err)
	}

	c.mu.Lock()
	c.subs[id] = sub
	c.mu.Unlock()

	go func() {
		for ev := range sub.Events() {
			if err := c.send(ctx, protocol.MsgEvent, 0, messages.PartyEvent{ID: id, Event: ev}); err != nil {
				s.log.Debugf("Forward %s event for %s: %v", ev.Kind, id, err)
				break
			}
		}
		c.unsubscribe(id)
	}()
	return messages.Response{Party: &current}
}

func (c *clientConn) send(ctx context.Context, t protocol.MsgType, seq uint32, payload any) error {
	b, err := protocol.Encode(t, seq, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.Write(ctx, websocket.MessageBinary, b)
}

func (c *clientConn) unsubscribe(id string) {
	c.mu.Lock()
	sub, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()
	if ok {
		_ = sub.Close()
	}
}

func (c *clientConn) closeSubs() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]party.Subscription)
	c.mu.Unlock()
	for _, sub := range subs {
		_ = sub.Close()
	}
}

func partyResponse(p party.Party, err error) messages.Response {
	if err != nil {
		return messages.ErrorResponse(err)
	}
	return messages.Response{Party: &p}
}

func badRequest(err error) messages.Response {
	return messages.Response{Code: messages.ErrBadRequest, Error: err.Error()}
}
