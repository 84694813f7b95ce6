package event

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/evbase/escore/codec"
)

// Registry maps event names to subscriber collections and enforces that one
// name keeps one signature for the registry's lifetime.
//
// The registry's lock guards only the map accesses below. The returned
// collections are not covered by it; see the Collection caller contract.
type Registry struct {
	mu    sync.Mutex
	colls map[string]*Collection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		colls: make(map[string]*Collection),
	}
}

// Register registers a named event and returns its new collection.
// It fails with a *DuplicateEventError if the name is already present.
func (r *Registry) Register(name string, sig Signature) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.colls[name]; ok {
		return nil, &DuplicateEventError{Name: name}
	}

	c := NewCollection(sig)
	r.colls[name] = c
	return c, nil
}

// GetOrRegister returns the existing collection for the name if its
// signature matches, creates a new one if the name is absent, and fails
// with a *TypeMismatchError otherwise.
//
// When multiple clients resolve the same name with different signatures,
// the first one registers the event and all later ones get the error.
func (r *Registry) GetOrRegister(name string, sig Signature) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.colls[name]; ok {
		if !c.Signature().Equal(sig) {
			return nil, &TypeMismatchError{Name: name, Want: c.Signature().String(), Got: sig.String()}
		}
		return c, nil
	}

	c := NewCollection(sig)
	r.colls[name] = c
	return c, nil
}

// Subscribers returns the collection registered under the name. The result
// is nil with a nil error when the name is unknown, and a *TypeMismatchError
// when the name is known under a different signature.
func (r *Registry) Subscribers(name string, sig Signature) (*Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.colls[name]
	if !ok {
		return nil, nil
	}
	if !c.Signature().Equal(sig) {
		return nil, &TypeMismatchError{Name: name, Want: c.Signature().String(), Got: sig.String()}
	}
	return c, nil
}

// Lookup returns the collection registered under the name without a
// signature check, or nil when the name is unknown. Use this to reach the
// signature-independent parts, like the codec.
func (r *Registry) Lookup(name string) *Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colls[name]
}

// Has reports whether the name is registered with the given signature.
func (r *Registry) Has(name string, sig Signature) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.colls[name]
	return ok && c.Signature().Equal(sig)
}

// Names returns the sorted registered event names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.colls))
	for name := range r.colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe writes a description of all registered events, one per line.
func (r *Registry) Describe(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.colls))
	for name := range r.colls {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := r.colls[name]
		parser := c.Codec()
		switch parser.ParameterCount() {
		case 0:
			fmt.Fprintf(w, "Event %s with 0 arguments\n", name)
		case 1:
			if parser.Kind(0) == codec.Unsupported {
				fmt.Fprintf(w, "Event %s with 1 argument of type UNSUPPORTED: %s\n", name, c)
			} else {
				fmt.Fprintf(w, "Event %s with 1 argument of type %s\n", name, parser.Kind(0))
			}
		default:
			fmt.Fprintf(w, "Event %s with %d arguments: %s\n", name, parser.ParameterCount(), c)
		}
	}
}
