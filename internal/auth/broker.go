package auth

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Broker fans session events out to in-process subscribers. A subscriber
// that falls behind loses events rather than blocking the publisher.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber. The channel is closed by cancel or
// when ctx is done.
func (b *Broker) Subscribe(ctx context.Context) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
		})
	}

	stop := context.AfterFunc(ctx, release)
	cancel := func() {
		stop()
		release()
	}

	return ch, cancel
}

// Publish delivers ev to every current subscriber.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
