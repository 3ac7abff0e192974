// Package events fans out change notifications to connected Server-Sent Events clients.
// The favorites service publishes here and every open stream receives the event, so a second
// browser tab sees a favorite appear or disappear without polling.
package events

import (
	"sync"

	"github.com/google/uuid"
)

const clientBuffer = 32

// Event is one notification. Type becomes the SSE "event:" line and Data is sent as JSON.
type Event struct {
	Type string
	Data any
}

// Broadcaster manages SSE clients and message broadcasting.
type Broadcaster struct {
	clients map[string]chan Event
	mu      sync.RWMutex
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[string]chan Event)}
}

// Subscribe registers a client and returns its id and event channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe() (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Event, clientBuffer)
	b.clients[id] = ch
	return id, ch
}

// Unsubscribe removes a client and closes its channel. Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		close(ch)
		delete(b.clients, id)
	}
}

// Publish delivers e to every client without blocking and returns how many received it.
// A client whose buffer is full misses the event.
func (b *Broadcaster) Publish(e Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, ch := range b.clients {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
