package logging

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] that fans out written bytes to subscribers.
//
// Each call to [Publisher.Write] copies the input once and delivers it to
// every active [Subscription]. By default delivery uses a buffered
// channel with ring-buffer semantics: when a subscriber's channel is
// full the oldest entry is dropped so Write never blocks, the right
// trade-off for a live display that would rather skip stale frames than
// stall the writer. Pass [WithLossless] to flip that trade-off for
// subscribers that must never miss an entry, at the cost of Write
// blocking until the slow subscriber drains.
//
// The audit logger uses a lossless Publisher to mirror every
// structured event to both a JSON-lines file and a human-readable text
// file: an audit trail is append-only with no gaps, so dropping an
// event under backpressure would be a correctness bug there, not a
// staleness trade-off.
type Publisher struct {
	subscribers []*Subscription
	bufSize     int
	lossless    bool
	mu          sync.Mutex
	closed      bool
}

// NewPublisher creates a [Publisher] with the given options.
// The default buffer size is 64 and delivery drops the oldest entry
// under backpressure; pass [WithLossless] to block instead.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n < 1 {
			n = 1
		}

		p.bufSize = n
	}
}

// WithLossless makes Write block on a full subscriber channel instead of
// dropping its oldest entry, guaranteeing every written entry reaches
// every subscriber in order. Use for sinks where losing an entry is a
// correctness bug rather than an acceptable staleness trade-off.
func WithLossless() PublisherOption {
	return func(p *Publisher) {
		p.lossless = true
	}
}

// Write copies b and sends the copy to all active subscribers. When a
// subscriber's channel is full, Write either drops that subscriber's
// oldest entry to make room (the default) or blocks until it drains
// (see [WithLossless]). Closed subscriptions are compacted out of the
// subscriber list. Write always returns len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	entry := make([]byte, len(b))
	copy(entry, b)

	alive := p.subscribers[:0]

	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)

			continue
		}

		p.deliver(sub, entry)

		alive = append(alive, sub)
	}

	for i := len(alive); i < len(p.subscribers); i++ {
		p.subscribers[i] = nil
	}

	p.subscribers = alive

	return len(b), nil
}

func (p *Publisher) deliver(sub *Subscription, entry []byte) {
	if p.lossless {
		sub.ch <- entry

		return
	}

	select {
	case sub.ch <- entry:
	default:
		<-sub.ch
		sub.ch <- entry
	}
}

// Subscribe creates and registers a new [Subscription]. If the Publisher
// is already closed the returned subscription's channel is immediately
// closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{ch: make(chan []byte, p.bufSize)}

	if p.closed {
		close(sub.ch)

		return sub
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close marks the Publisher as closed, closes all subscription channels,
// and releases the subscriber list. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil

	return nil
}

// Subscription receives entries from a [Publisher].
type Subscription struct {
	ch     chan []byte
	closed atomic.Bool
}

// C returns the read-only channel that delivers entries. Callers must not
// modify the returned byte slices.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close marks the subscription as closed. The Publisher will close the
// underlying channel on its next Write or Close call. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}
