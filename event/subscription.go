package event

// Handle is a non-owning reference to one subscriber registration.
//
// There is no general concept of equality for functions, so subscribers
// cannot be removed by value; AddSubscriber returns a Handle instead. A
// Handle does not own the registration: dropping it leaves the subscriber
// in place. Use Own to get automatic removal.
type Handle struct {
	coll *Collection
	id   uint32
}

// Unsubscribe removes the referenced subscriber and empties the handle.
// It is idempotent; calling it on an empty handle does nothing.
//
// Must not be called while the event the subscriber was registered for is
// being dispatched.
func (h *Handle) Unsubscribe() {
	if h.coll == nil {
		return
	}
	h.coll.RemoveHandler(h.id)
	h.coll = nil
}

// IsSubscribed reports whether the handle still references a registration.
func (h *Handle) IsSubscribed() bool {
	return h.coll != nil
}

// Scoped is an owning subscription: it removes its subscriber exactly once,
// either on an explicit Unsubscribe/Close or when released by the owner.
//
// Ownership is unique. A Scoped must not be copied; pass the pointer.
type Scoped struct {
	h Handle
}

// Own takes ownership of a non-owning handle.
func Own(h Handle) *Scoped {
	return &Scoped{h: h}
}

// Unsubscribe removes the owned subscriber. Safe to call more than once;
// only the first call removes anything.
func (s *Scoped) Unsubscribe() {
	s.h.Unsubscribe()
}

// Close removes the owned subscriber. It implements io.Closer so a Scoped
// can be wired into deferred cleanup chains; the returned error is always
// nil.
func (s *Scoped) Close() error {
	s.h.Unsubscribe()
	return nil
}

// Release gives up ownership without unsubscribing and returns the inner
// non-owning handle. The Scoped is empty afterwards.
func (s *Scoped) Release() Handle {
	h := s.h
	s.h = Handle{}
	return h
}

// IsSubscribed reports whether the scoped subscription is still live.
func (s *Scoped) IsSubscribed() bool {
	return s.h.IsSubscribed()
}
