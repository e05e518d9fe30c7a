package party

import "sync"

// Feed is a Subscription backed by a size-1 channel; the newest event wins.
// Push never blocks.
type Feed struct {
	mu      sync.Mutex
	ch      chan Event
	closed  bool
	onClose func()
}

// NewFeed returns an open feed. onClose, if set, runs once when the feed is
// closed by either side.
func NewFeed(onClose func()) *Feed {
	return &Feed{ch: make(chan Event, 1), onClose: onClose}
}

// Push delivers ev, replacing any undelivered event. A delete closes the feed
// after it is queued.
func (f *Feed) Push(ev Event) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	select { // drain stale, push latest
	case <-f.ch:
	default:
	}
	f.ch <- ev
	if ev.Kind != EventDelete {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.ch)
	onClose := f.onClose
	f.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

func (f *Feed) Events() <-chan Event {
	return f.ch
}

// Close ends the feed. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.ch)
	onClose := f.onClose
	f.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	return nil
}
