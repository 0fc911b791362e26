package notification

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// DefaultCapacity matches the number of message lines the console shows.
const DefaultCapacity = 4

// Queue is a bounded FIFO of session events. When full, the oldest event
// is dropped to make room.
type Queue struct {
	mu     sync.Mutex
	events []entity.Event
	head   int
	count  int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Queue{
		events: make([]entity.Event, capacity),
	}
}

func (that *Queue) Notify(event entity.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	tail := (that.head + that.count) % len(that.events)
	that.events[tail] = event

	if that.count == len(that.events) {
		that.head = (that.head + 1) % len(that.events)
		return
	}

	that.count++
}

// Drain returns the queued events oldest first and empties the queue.
func (that *Queue) Drain() []entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	drained := that.snapshotLocked()
	that.head, that.count = 0, 0

	return drained
}

// Peek returns the queued events oldest first without removing them.
func (that *Queue) Peek() []entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

func (that *Queue) Clear() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.head, that.count = 0, 0
}

func (that *Queue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.count
}

func (that *Queue) snapshotLocked() []entity.Event {
	events := make([]entity.Event, 0, that.count)
	for i, n := 0, that.count; i < n; i++ {
		events = append(events, that.events[(that.head+i)%len(that.events)])
	}

	return events
}
