// Package pubsub implements the process-local fan-out behind the bookAdded
// subscription: live listeners only, no persistence, no replay.
package pubsub

import (
	"context"
	lb "library_backend"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the per-subscriber queue of emitted-but-not-yet-consumed
// events. Publish never blocks; a subscriber that falls further behind than
// this loses events.
const subscriberBuffer = 16

// Broker distributes published books to all currently subscribed listeners.
// Each subscriber gets an independent copy of every event published while it
// is registered.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]chan lb.Book
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]chan lb.Book)}
}

// Publish delivers book to every live subscriber, fire-and-forget. Full
// subscriber queues are skipped rather than blocking the publisher.
func (b *Broker) Publish(book lb.Book) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- book:
		default:
		}
	}
}

// Subscribe registers a new listener and returns its event channel. The
// channel is closed and the listener removed when ctx ends; events published
// before the call are never delivered.
func (b *Broker) Subscribe(ctx context.Context) <-chan lb.Book {
	id := uuid.NewString()
	ch := make(chan lb.Book, subscriberBuffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Len reports the number of live subscribers.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
