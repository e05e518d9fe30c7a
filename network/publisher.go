package network

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/decred/slog"
)

// PublishRetryDelay is how long a failed score, status or elimination
// write waits before it is tried again.
const PublishRetryDelay = 50 * time.Millisecond

// closeAttempts bounds how often Close retries writes that keep failing.
const closeAttempts = 3

// Publisher writes gameplay fields to the party record off the frame loop.
// Each field keeps only its newest unsent value. Paddle and ball failures
// are logged and dropped since the next frame supersedes them. Score,
// status and elimination failures are queued again unless a newer value
// has arrived in the meantime.
type Publisher struct {
	session    *Session
	timeout    time.Duration
	retryDelay time.Duration
	log        slog.Logger

	mu         sync.Mutex
	paddle     *float64
	ball       *party.BallSnapshot
	score      *[2]int
	status     *party.Status
	eliminated []string

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewPublisher(session *Session, timeout time.Duration, log slog.Logger) *Publisher {
	if log == nil {
		log = slog.Disabled
	}
	p := &Publisher{
		session:    session,
		timeout:    timeout,
		retryDelay: PublishRetryDelay,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Publisher) Paddle(pos float64) {
	p.mu.Lock()
	p.paddle = &pos
	p.mu.Unlock()
	p.signal()
}

func (p *Publisher) Ball(b party.BallSnapshot) {
	p.mu.Lock()
	p.ball = &b
	p.mu.Unlock()
	p.signal()
}

func (p *Publisher) Score(host, guest int) {
	p.mu.Lock()
	p.score = &[2]int{host, guest}
	p.mu.Unlock()
	p.signal()
}

func (p *Publisher) Status(s party.Status) {
	p.mu.Lock()
	p.status = &s
	p.mu.Unlock()
	p.signal()
}

// Eliminate queues a knock-out. Eliminations are never coalesced.
func (p *Publisher) Eliminate(playerID string) {
	p.mu.Lock()
	p.eliminated = append(p.eliminated, playerID)
	p.mu.Unlock()
	p.signal()
}

// Close stops the worker after it writes whatever is still pending.
func (p *Publisher) Close() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

func (p *Publisher) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	var retry <-chan time.Time
	for {
		select {
		case <-p.stop:
			for attempt := 1; p.flush() && attempt < closeAttempts; attempt++ {
				time.Sleep(p.retryDelay)
			}
			return
		case <-p.wake:
		case <-retry:
		}
		retry = nil
		if p.flush() {
			retry = time.After(p.retryDelay)
		}
	}
}

// flush writes everything pending and reports whether a write was queued
// again for retry. Scores and eliminations go out before the ball so a
// guest never sees the reset serve ahead of the point that caused it.
func (p *Publisher) flush() bool {
	p.mu.Lock()
	paddle, ball, score, status, eliminated := p.paddle, p.ball, p.score, p.status, p.eliminated
	p.paddle, p.ball, p.score, p.status, p.eliminated = nil, nil, nil, nil, nil
	p.mu.Unlock()

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if paddle != nil {
		p.check("paddle", p.session.UpdatePaddle(ctx, *paddle))
	}
	var failed []string
	for _, id := range eliminated {
		if p.check("eliminate", p.session.Eliminate(ctx, id)) {
			failed = append(failed, id)
		}
	}
	scoreFailed := score != nil && p.check("score", p.session.UpdateScore(ctx, score[0], score[1]))

	// Status and ball wait behind a failed score or elimination.
	blocked := len(failed) > 0 || scoreFailed
	statusFailed := status != nil && (blocked || p.check("status", p.session.UpdateStatus(ctx, *status)))
	holdBall := ball != nil && blocked
	if ball != nil && !holdBall {
		p.check("ball", p.session.UpdateBall(ctx, *ball))
	}
	if !blocked && !statusFailed {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.eliminated = append(failed, p.eliminated...)
	if scoreFailed && p.score == nil {
		p.score = score
	}
	if statusFailed && p.status == nil {
		p.status = status
	}
	if holdBall && p.ball == nil {
		p.ball = ball
	}
	return true
}

// check logs a failed write and reports whether it is worth retrying.
func (p *Publisher) check(field string, err error) bool {
	if err == nil {
		return false
	}
	p.log.Debugf("Publish %s failed: %v", field, err)
	return !permanent(err)
}

// permanent reports errors no retry can fix: the party or the session is gone.
func permanent(err error) bool {
	return errors.Is(err, ErrNotInParty) || errors.Is(err, ErrNotHost) ||
		errors.Is(err, party.ErrNotFound) || errors.Is(err, ErrStoreClosed) ||
		errors.Is(err, ErrInvalidStatus)
}
