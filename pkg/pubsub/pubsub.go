package pubsub

import (
	"sync"
)

// PubSub is the in-process bus the replay engine publishes snapshots
// on. Payloads are JSON strings, see pkg/caster.
type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func NewPubSub[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, 1)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- data:
		default:
			// slow subscriber: drop its stale snapshot for the new one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- data:
			default:
			}
		}
	}
}
