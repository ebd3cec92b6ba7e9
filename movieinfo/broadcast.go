package movieinfo

import (
	"context"
	"errors"
	"sync"
)

// ErrSubscriptionClosed is returned by Subscription.Next once the subscription is closed.
var ErrSubscriptionClosed = errors.New("movie info: subscription closed")

// Broadcaster fans newly created movie infos out to every active subscription.
// A subscription only sees records published after it was registered.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscription]struct{})}
}

func (b *Broadcaster) Subscribe() *Subscription {
	s := &Subscription{
		broadcaster: b,
		ready:       make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	return s
}

// Publish delivers m to every subscription. It never blocks on slow subscribers.
func (b *Broadcaster) Publish(m MovieInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs {
		s.push(m)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription is a single listener on a Broadcaster. Records are queued until read with Next.
type Subscription struct {
	broadcaster *Broadcaster

	mu     sync.Mutex
	queue  []MovieInfo
	closed bool
	ready  chan struct{}
}

func (s *Subscription) push(m MovieInfo) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, m)
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next blocks until a record is available, the subscription is closed or ctx is done.
func (s *Subscription) Next(ctx context.Context) (MovieInfo, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return MovieInfo{}, ErrSubscriptionClosed
		}
		if len(s.queue) > 0 {
			m := s.queue[0]
			s.queue[0] = MovieInfo{}
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return m, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return MovieInfo{}, ctx.Err()
		case <-s.ready:
		}
	}
}

// Close unregisters the subscription and drops anything still queued. It is safe to call twice.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.queue = nil
	s.mu.Unlock()

	s.broadcaster.remove(s)

	select {
	case s.ready <- struct{}{}:
	default:
	}
}
