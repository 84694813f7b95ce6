// Package queue buffers deferred event invocations and drains them in FIFO
// order.
//
// Events can be enqueued from any goroutine at any time, including while a
// drain is in progress. A drain pass detaches the entire pending list under
// the lock and fires it outside the lock, so subscribers may themselves
// enqueue, subscribe or drain without deadlocking; entries enqueued during a
// pass are picked up by the next one.
package queue

import (
	"context"
	"reflect"
	"sync"

	"github.com/evbase/escore/event"
	"github.com/evbase/escore/logging/logger"
)

// node is one queued invocation. The collection reference is non-owning;
// the argument values are owned by the node.
type node struct {
	coll *event.Collection
	args []reflect.Value
	next *node
}

// fire passes the queued arguments to the collection's subscribers.
func (n *node) fire() {
	n.coll.CallValues(n.args)
}

// Queue is a thread-safe FIFO of deferred event invocations.
//
// The lock is held only long enough to append or detach nodes; subscriber
// callbacks always run outside the lock.
type Queue struct {
	mu   sync.Mutex
	head *node
	tail *node
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue binds the arguments against the collection signature and appends
// the invocation to the tail of the queue. Safe to call from any goroutine.
func (q *Queue) Enqueue(coll *event.Collection, args ...any) error {
	vals, err := coll.BindArgs(args...)
	if err != nil {
		return err
	}
	q.EnqueueValues(coll, vals)
	return nil
}

// EnqueueValues appends an invocation with pre-bound argument values.
func (q *Queue) EnqueueValues(coll *event.Collection, vals []reflect.Value) {
	n := &node{coll: coll, args: vals}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
}

// EnqueueStrings parses the textual arguments with the collection's codec
// and appends the invocation.
func (q *Queue) EnqueueStrings(coll *event.Collection, args []string) error {
	vals, err := coll.Codec().ParseAll(args)
	if err != nil {
		return err
	}
	q.EnqueueValues(coll, vals)
	return nil
}

// Process fires all events that were queued when the pass began, in FIFO
// order. Events enqueued during the pass are left for the next one.
// It returns false if the queue was empty.
func (q *Queue) Process() bool {
	q.mu.Lock()
	cur := q.head
	if cur == nil {
		q.mu.Unlock()
		return false
	}
	q.head = nil
	q.tail = nil
	q.mu.Unlock()

	// The detached batch is no longer reachable from the queue, so firing
	// happens without the lock. A subscriber panic abandons the rest of
	// the batch but leaves the queue itself consistent.
	for ; cur != nil; cur = cur.next {
		cur.fire()
	}
	return true
}

// ProcessOne detaches and fires only the current head.
// It returns true if an event was fired.
func (q *Queue) ProcessOne() bool {
	q.mu.Lock()
	n := q.head
	if n == nil {
		q.mu.Unlock()
		return false
	}
	q.head = n.next
	if q.tail == n {
		q.tail = nil
	}
	q.mu.Unlock()

	n.fire()
	return true
}

// ProcessUntilEmpty repeatedly calls Process until it reports an empty
// queue or the pass limit is reached. A maxPasses of zero or less means
// unbounded; supply a limit when events may re-enqueue themselves.
// It returns the number of passes that fired events.
func (q *Queue) ProcessUntilEmpty(maxPasses int) int {
	passes := 0
	for maxPasses <= 0 || passes < maxPasses {
		if !q.Process() {
			break
		}
		passes++
	}
	return passes
}

// ProcessFor fires only the pending events targeting the given collection,
// preserving the relative order of both the drained and the retained
// entries. It returns true if at least one event was fired.
func (q *Queue) ProcessFor(coll *event.Collection) bool {
	q.mu.Lock()

	var matchHead, matchTail *node
	var keepHead, keepTail *node
	for cur := q.head; cur != nil; {
		next := cur.next
		cur.next = nil
		if cur.coll == coll {
			if matchHead == nil {
				matchHead = cur
			} else {
				matchTail.next = cur
			}
			matchTail = cur
		} else {
			if keepHead == nil {
				keepHead = cur
			} else {
				keepTail.next = cur
			}
			keepTail = cur
		}
		cur = next
	}
	q.head = keepHead
	q.tail = keepTail
	q.mu.Unlock()

	if matchHead == nil {
		return false
	}
	for cur := matchHead; cur != nil; cur = cur.next {
		cur.fire()
	}
	return true
}

// Size computes the number of pending events. O(n), lock-guarded; prefer
// IsEmpty when the exact count does not matter.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := 0
	for cur := q.head; cur != nil; cur = cur.next {
		count++
	}
	return count
}

// IsEmpty reports whether any events are pending.
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head == nil
}

// Clear discards all pending events without firing them.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.head = nil
	q.tail = nil
	q.mu.Unlock()
}

// Close discards any still-pending events without firing them and logs a
// warning with the discarded count.
func (q *Queue) Close() {
	q.mu.Lock()
	cur := q.head
	q.head = nil
	q.tail = nil
	q.mu.Unlock()

	if cur == nil {
		return
	}
	count := 0
	for ; cur != nil; cur = cur.next {
		count++
	}
	logger.Warnf(context.Background(), "closing event queue with %d unprocessed events, discarding them", count)
}
