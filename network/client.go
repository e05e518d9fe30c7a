package network

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Olle-svg/ponggamebyolle/shared/messages"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/Olle-svg/ponggamebyolle/shared/protocol"
	"github.com/coder/websocket"
	"github.com/decred/slog"
)

const maxFrameSize = 1 << 16

// Client is a party.Store backed by a partyd websocket connection. Requests
// are correlated with responses by sequence number; change events are fanned
// out to local feeds.
type Client struct {
	conn    *websocket.Conn
	log     slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	writeMu sync.Mutex

	mu      sync.Mutex
	seq     uint32
	pending map[uint32]chan messages.Response
	feeds   map[string]map[*party.Feed]struct{}
	err     error
}

var _ party.Store = (*Client)(nil)

// storeURL turns a host:port into the partyd websocket URL.
func storeURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return "ws" + strings.TrimPrefix(addr, "http") + "/ws"
	}
	return "ws://" + addr + "/ws"
}

// Dial connects to partyd at addr. timeout bounds every request.
func Dial(ctx context.Context, addr string, timeout time.Duration, log slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Disabled
	}
	conn, _, err := websocket.Dial(ctx, storeURL(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("dial party store %s: %w", addr, err)
	}
	conn.SetReadLimit(maxFrameSize)

	cctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:    conn,
		log:     log,
		timeout: timeout,
		ctx:     cctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		pending: make(map[uint32]chan messages.Response),
		feeds:   make(map[string]map[*party.Feed]struct{}),
	}
	go c.readLoop()
	log.Infof("Connected to party store %s", addr)
	return c, nil
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection ended, or nil while it is up.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close drops the connection. Pending requests fail and open feeds close.
func (c *Client) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "")
	c.cancel()
	<-c.done
	return err
}

func (c *Client) readLoop() {
	var err error
	defer func() { c.shutdown(err) }()

	for {
		var data []byte
		_, data, err = c.conn.Read(c.ctx)
		if err != nil {
			return
		}
		env, derr := protocol.DecodeEnvelope(data)
		if derr != nil {
			c.log.Warnf("Bad frame from party store: %v", derr)
			continue
		}

		switch env.Type {
		case protocol.MsgResponse:
			resp, derr := protocol.DecodePayload[messages.Response](env)
			if derr != nil {
				resp = messages.Response{Code: messages.ErrInternal, Error: derr.Error()}
			}
			c.mu.Lock()
			ch, ok := c.pending[env.Seq]
			delete(c.pending, env.Seq)
			c.mu.Unlock()
			if ok {
				ch <- resp
			}

		case protocol.MsgEvent:
			ev, derr := protocol.DecodePayload[messages.PartyEvent](env)
			if derr != nil {
				c.log.Warnf("Bad event from party store: %v", derr)
				continue
			}
			c.dispatch(ev)

		default:
			c.log.Debugf("Ignoring %s from party store", env.Type)
		}
	}
}

// dispatch hands ev to every local feed of the record. Feeds of a deleted
// record are detached first so closing them sends no unsubscribe.
func (c *Client) dispatch(ev messages.PartyEvent) {
	c.mu.Lock()
	set := c.feeds[ev.ID]
	feeds := make([]*party.Feed, 0, len(set))
	for f := range set {
		feeds = append(feeds, f)
	}
	if ev.Event.Kind == party.EventDelete {
		delete(c.feeds, ev.ID)
	}
	c.mu.Unlock()

	for _, f := range feeds {
		f.Push(ev.Event)
	}
}

func (c *Client) shutdown(err error) {
	if err == nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
		err = ErrStoreClosed
	} else {
		c.log.Warnf("Party store connection lost: %v", err)
		err = fmt.Errorf("%w: %v", ErrStoreClosed, err)
	}

	c.mu.Lock()
	c.err = err
	pending := c.pending
	c.pending = make(map[uint32]chan messages.Response)
	var feeds []*party.Feed
	for _, set := range c.feeds {
		for f := range set {
			feeds = append(feeds, f)
		}
	}
	c.feeds = make(map[string]map[*party.Feed]struct{})
	c.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
	for _, f := range feeds {
		_ = f.Close()
	}
	c.cancel()
	close(c.done)
}

// request sends one envelope and waits for its response.
func (c *Client) request(ctx context.Context, t protocol.MsgType, payload any) (messages.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ch := make(chan messages.Response, 1)
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return messages.Response{}, err
	}
	c.seq++
	seq := c.seq
	c.pending[seq] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, seq)
		c.mu.Unlock()
	}

	b, err := protocol.Encode(t, seq, payload)
	if err != nil {
		forget()
		return messages.Response{}, err
	}
	c.writeMu.Lock()
	err = c.conn.Write(ctx, websocket.MessageBinary, b)
	c.writeMu.Unlock()
	if err != nil {
		forget()
		return messages.Response{}, fmt.Errorf("send %s: %w", t, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return messages.Response{}, c.Err()
		}
		if err := resp.Code.Err(resp.Error); err != nil {
			return resp, err
		}
		return resp, nil
	case <-ctx.Done():
		forget()
		return messages.Response{}, fmt.Errorf("%s: %w", t, ctx.Err())
	}
}

func (c *Client) partyRequest(ctx context.Context, t protocol.MsgType, payload any) (party.Party, error) {
	resp, err := c.request(ctx, t, payload)
	if err != nil {
		return party.Party{}, err
	}
	if resp.Party == nil {
		return party.Party{}, fmt.Errorf("%s: empty response", t)
	}
	return *resp.Party, nil
}

func (c *Client) Insert(ctx context.Context, p party.Party) (party.Party, error) {
	return c.partyRequest(ctx, protocol.MsgInsert, messages.InsertRequest{Party: p})
}

func (c *Client) Get(ctx context.Context, id string) (party.Party, error) {
	return c.partyRequest(ctx, protocol.MsgGet, messages.GetRequest{ID: id})
}

func (c *Client) FindByCode(ctx context.Context, code string) (party.Party, error) {
	return c.partyRequest(ctx, protocol.MsgFindByCode, messages.FindByCodeRequest{Code: code})
}

func (c *Client) Update(ctx context.Context, id string, patch party.Patch) (party.Party, error) {
	return c.partyRequest(ctx, protocol.MsgUpdate, messages.UpdateRequest{ID: id, Patch: patch})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.request(ctx, protocol.MsgDelete, messages.DeleteRequest{ID: id})
	return err
}

// Subscribe opens a local feed for id. The server side subscription is shared
// by every local feed of the same record.
func (c *Client) Subscribe(ctx context.Context, id string) (party.Subscription, error) {
	var feed *party.Feed
	feed = party.NewFeed(func() { c.detach(id, feed) })

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	first := len(c.feeds[id]) == 0
	if first {
		c.feeds[id] = make(map[*party.Feed]struct{})
	}
	c.feeds[id][feed] = struct{}{}
	c.mu.Unlock()

	if !first {
		return feed, nil
	}
	if _, err := c.request(ctx, protocol.MsgSubscribe, messages.SubscribeRequest{ID: id}); err != nil {
		c.mu.Lock()
		delete(c.feeds[id], feed)
		if len(c.feeds[id]) == 0 {
			delete(c.feeds, id)
		}
		c.mu.Unlock()
		return nil, err
	}
	return feed, nil
}

// detach runs when a local feed closes. The last feed of a still registered
// record tells the server to stop forwarding.
func (c *Client) detach(id string, feed *party.Feed) {
	c.mu.Lock()
	set, ok := c.feeds[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	if _, mine := set[feed]; !mine {
		c.mu.Unlock()
		return
	}
	delete(set, feed)
	last := len(set) == 0
	if last {
		delete(c.feeds, id)
	}
	c.mu.Unlock()

	if last {
		go func() {
			if _, err := c.request(c.ctx, protocol.MsgUnsubscribe, messages.UnsubscribeRequest{ID: id}); err != nil {
				c.log.Debugf("Unsubscribe %s: %v", id, err)
			}
		}()
	}
}
