package formats

import "sync"

// EventKind names a change to the catalog.
type EventKind string

const (
	EventLoaded           EventKind = "loaded"
	EventSelectionChanged EventKind = "selection_changed"
	EventAdded            EventKind = "added"
	EventUpdated          EventKind = "updated"
	EventDeleted          EventKind = "deleted"
)

// Event tells subscribers the snapshot changed. SelectedID is the selection
// after the change.
type Event struct {
	Kind       EventKind
	FormatID   string
	SelectedID string
}

const subscriberBuffer = 16

type broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func (b *broker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// publish never blocks; a subscriber with a full buffer misses the event.
func (b *broker) publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
