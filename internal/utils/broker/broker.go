// broker/broker.go
package broker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TopicSubmissions carries every submission lifecycle event.
const TopicSubmissions = "submissions"

type EventType string

const (
	EventSubmitted EventType = "submitted"
	EventEdited    EventType = "edited"
	EventModerated EventType = "moderated"
	EventAnalyzed  EventType = "analyzed"
)

type Event struct {
	Type         EventType `json:"type"`
	SubmissionID uuid.UUID `json:"submissionId"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

type Broker struct {
	subscribers map[string][]chan Event
	bufferSize  int
	mu          sync.RWMutex
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan Event),
		bufferSize:  16,
	}
}

func (b *Broker) Subscribe(topic string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, b.bufferSize)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

func (b *Broker) Unsubscribe(topic string, ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if chans, ok := b.subscribers[topic]; ok {
		for i, c := range chans {
			if c == ch {
				b.subscribers[topic] = append(chans[:i], chans[i+1:]...)
				close(c)
				break
			}
		}
	}
}

// Publish delivers msg to every subscriber of topic and reports how many
// received it. Subscribers whose buffer is full miss the event.
func (b *Broker) Publish(topic string, msg Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	delivered := 0
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}
