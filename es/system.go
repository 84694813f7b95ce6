// Package es provides the event system façade: a name-addressed registry of
// typed events combined with a queue for deferred dispatch.
//
// Subscribers are attached with Subscribe, events are fired synchronously
// with Call or deferred with Publish, and deferred events are drained with
// the Process methods.
package es

import (
	"context"
	"fmt"

	"github.com/evbase/escore/ctxutil"
	"github.com/evbase/escore/ecode"
	"github.com/evbase/escore/event"
	"github.com/evbase/escore/logging/logger"
	"github.com/evbase/escore/queue"
)

// System composes a Registry and a Queue behind a simplified interface.
type System struct {
	*event.Registry
	queue *queue.Queue
}

// New creates an event system with an empty registry and queue.
func New() *System {
	return &System{
		Registry: event.NewRegistry(),
		queue:    queue.New(),
	}
}

// Queue returns the internal queue for direct enqueue or drain control.
func (s *System) Queue() *queue.Queue {
	return s.queue
}

// RegisterEvent resolves or creates the collection for a named event.
// Unlike Registry.Register, an existing registration with a matching
// signature is not an error.
func (s *System) RegisterEvent(name string, sig event.Signature) (*event.Collection, error) {
	return s.GetOrRegister(name, sig)
}

// Subscribe attaches a callback to the named event. The event signature is
// inferred from the callback's parameters; the event is registered on first
// use. The callback must return no values, see SubscribeIgnoreResult.
func (s *System) Subscribe(name string, fn any) (event.Handle, error) {
	sig, err := event.SignatureOfFunc(fn)
	if err != nil {
		return event.Handle{}, err
	}
	coll, err := s.GetOrRegister(name, sig)
	if err != nil {
		return event.Handle{}, err
	}
	return coll.AddSubscriber(fn)
}

// SubscribeIgnoreResult attaches a callback whose return values are
// discarded on every invocation.
func (s *System) SubscribeIgnoreResult(name string, fn any) (event.Handle, error) {
	sig, err := event.SignatureOfFunc(fn)
	if err != nil {
		return event.Handle{}, err
	}
	coll, err := s.GetOrRegister(name, sig)
	if err != nil {
		return event.Handle{}, err
	}
	return coll.AddSubscriberIgnoreResult(fn)
}

// Publish enqueues the event for a later drain pass. It returns false with
// a nil error when the name is not registered, and an error when the
// arguments do not fit the registered signature. Safe to call from any
// goroutine.
func (s *System) Publish(name string, args ...any) (bool, error) {
	coll := s.Lookup(name)
	if coll == nil {
		logger.Debugf(ctxutil.SetEventName(context.Background(), name), "publish on unregistered event")
		return false, nil
	}
	if err := s.queue.Enqueue(coll, args...); err != nil {
		return false, err
	}
	return true, nil
}

// Call dispatches the event synchronously to all its subscribers. It
// returns false with a nil error when the name is not registered.
func (s *System) Call(name string, args ...any) (bool, error) {
	coll := s.Lookup(name)
	if coll == nil {
		return false, nil
	}
	if err := coll.Call(args...); err != nil {
		return false, err
	}
	return true, nil
}

// CallStrings parses the textual arguments with the event's codec and
// dispatches synchronously. This is the integration point for external
// command sources.
func (s *System) CallStrings(name string, args []string) error {
	coll := s.Lookup(name)
	if coll == nil {
		return fmt.Errorf("%s", ecode.NotExist(fmt.Sprintf("event %q", name)))
	}
	return coll.CallStrings(args)
}

// PublishStrings parses the textual arguments with the event's codec and
// enqueues the invocation.
func (s *System) PublishStrings(name string, args []string) error {
	coll := s.Lookup(name)
	if coll == nil {
		return fmt.Errorf("%s", ecode.NotExist(fmt.Sprintf("event %q", name)))
	}
	return s.queue.EnqueueStrings(coll, args)
}

// Process fires all events queued before the pass began.
// It returns false if the queue was empty.
func (s *System) Process() bool {
	return s.queue.Process()
}

// ProcessOne fires only the head of the queue.
func (s *System) ProcessOne() bool {
	return s.queue.ProcessOne()
}

// ProcessUntilEmpty drains the queue until it stays empty or the pass limit
// is reached; maxPasses of zero or less means unbounded.
func (s *System) ProcessUntilEmpty(maxPasses int) int {
	return s.queue.ProcessUntilEmpty(maxPasses)
}

// ProcessNamed fires only the queued events for one named event.
// It returns false when the name is unknown or nothing was pending.
func (s *System) ProcessNamed(name string) bool {
	coll := s.Lookup(name)
	if coll == nil {
		return false
	}
	return s.queue.ProcessFor(coll)
}

// Close discards pending queued events.
func (s *System) Close() {
	s.queue.Close()
}
