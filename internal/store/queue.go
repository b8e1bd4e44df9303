package store

import (
	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// Queue is the user-curated override sequence. The playback controller
// consumes its head before applying any shuffle/sequence/repeat logic.
// FIFO; independent of the catalog view.
type Queue struct {
	bus   ports.EventBus
	paths []string
}

// NewQueue creates an empty queue.
func NewQueue(bus ports.EventBus) *Queue {
	return &Queue{bus: bus, paths: []string{}}
}

// Push appends a path to the back of the queue.
func (q *Queue) Push(path string) {
	q.paths = append(q.paths, path)
	q.publish()
}

// Pop removes and returns the head of the queue.
func (q *Queue) Pop() (string, bool) {
	if len(q.paths) == 0 {
		return "", false
	}
	head := q.paths[0]
	q.paths = q.paths[1:]
	q.publish()
	return head, true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.paths = []string{}
	q.publish()
}

// Len returns the number of queued paths.
func (q *Queue) Len() int { return len(q.paths) }

// Paths returns a snapshot of the queue contents.
func (q *Queue) Paths() []string {
	out := make([]string, len(q.paths))
	copy(out, q.paths)
	return out
}

func (q *Queue) publish() {
	if q.bus != nil {
		q.bus.Publish(domain.NewQueueUpdatedEvent(q.Paths()))
	}
}
