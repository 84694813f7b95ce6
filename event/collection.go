package event

import (
	"reflect"
	"strings"

	"github.com/evbase/escore/codec"
)

// subscriber is one registered callback with its collection-scoped id.
type subscriber struct {
	id uint32
	fn reflect.Value
}

// Collection holds the ordered subscribers for one event signature and
// dispatches synchronous calls to them.
//
// A Collection is not internally synchronized. Adding or removing
// subscribers while a call over the same collection is in progress, from
// another goroutine or from inside one of its own subscribers, is a caller
// contract violation.
type Collection struct {
	sig    Signature
	parser *codec.Codec
	subs   []subscriber
	nextID uint32
}

// NewCollection creates an empty collection for the given signature.
func NewCollection(sig Signature) *Collection {
	return &Collection{
		sig:    sig,
		parser: codec.New(sig.Params()),
	}
}

// Signature returns the collection's event signature.
func (c *Collection) Signature() Signature {
	return c.sig
}

// Codec returns the parser that can invoke this event from string arguments.
func (c *Collection) Codec() *codec.Codec {
	return c.parser
}

// HandlerCount returns the number of registered subscribers.
func (c *Collection) HandlerCount() int {
	return len(c.subs)
}

// AddSubscriber registers a callback and returns a handle for removal.
//
// The callback must be a non-variadic function whose parameters exactly
// match the collection signature and which returns no values. A function
// returning a value is rejected with an *InvocationError; use
// AddSubscriberIgnoreResult to discard results explicitly.
func (c *Collection) AddSubscriber(fn any) (Handle, error) {
	v, err := c.checkSubscriber(fn)
	if err != nil {
		return Handle{}, err
	}
	if v.Type().NumOut() != 0 {
		return Handle{}, &InvocationError{
			Type:   v.Type(),
			Reason: "only functions returning no value are allowed; use AddSubscriberIgnoreResult to discard the result",
		}
	}
	return c.add(v), nil
}

// AddSubscriberIgnoreResult registers a callback whose return values, if
// any, are discarded on every invocation.
func (c *Collection) AddSubscriberIgnoreResult(fn any) (Handle, error) {
	v, err := c.checkSubscriber(fn)
	if err != nil {
		return Handle{}, err
	}
	return c.add(v), nil
}

// checkSubscriber validates the callback shape against the signature.
func (c *Collection) checkSubscriber(fn any) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return reflect.Value{}, &InvocationError{Type: reflect.TypeOf(fn), Reason: "subscriber is not a function"}
	}
	t := v.Type()
	if t.IsVariadic() {
		return reflect.Value{}, &InvocationError{Type: t, Reason: "variadic subscribers are not supported"}
	}
	if v.IsNil() {
		return reflect.Value{}, &InvocationError{Type: t, Reason: "subscriber is nil"}
	}
	if t.NumIn() != c.sig.Len() {
		return reflect.Value{}, &TypeMismatchError{Want: c.sig.String(), Got: funcParams(t).String()}
	}
	for i, p := range c.sig.params {
		if t.In(i) != p {
			return reflect.Value{}, &TypeMismatchError{Want: c.sig.String(), Got: funcParams(t).String()}
		}
	}
	return v, nil
}

// add appends the validated callback under a fresh id.
// Ids are monotonic within the collection and never reused.
func (c *Collection) add(fn reflect.Value) Handle {
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return Handle{coll: c, id: id}
}

// RemoveHandler removes the subscriber with the given id.
// It is a no-op when the id is absent.
func (c *Collection) RemoveHandler(id uint32) {
	for i := range c.subs {
		if c.subs[i].id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Call invokes every current subscriber synchronously, in registration
// order. A subscriber panic propagates to the caller and the remaining
// subscribers of this call are not invoked.
func (c *Collection) Call(args ...any) error {
	vals, err := c.BindArgs(args...)
	if err != nil {
		return err
	}
	c.CallValues(vals)
	return nil
}

// CallValues invokes every subscriber with pre-bound argument values.
// The values must match the collection signature; use BindArgs or the codec
// to produce them.
func (c *Collection) CallValues(vals []reflect.Value) {
	for _, s := range c.subs {
		s.fn.Call(vals)
	}
}

// CallStrings parses the given textual arguments and dispatches
// synchronously.
func (c *Collection) CallStrings(args []string) error {
	vals, err := c.parser.ParseAll(args)
	if err != nil {
		return err
	}
	c.CallValues(vals)
	return nil
}

// BindArgs converts loosely typed argument values into the exact parameter
// values the subscribers expect. Arguments must be assignable to the
// registered parameter types; an untyped nil is only accepted for nilable
// parameter types.
func (c *Collection) BindArgs(args ...any) ([]reflect.Value, error) {
	if len(args) != c.sig.Len() {
		return nil, &TypeMismatchError{Want: c.sig.String(), Got: signatureOfArgs(args).String()}
	}
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		p := c.sig.params[i]
		if a == nil {
			if !nilable(p) {
				return nil, &TypeMismatchError{Want: c.sig.String(), Got: signatureOfArgs(args).String()}
			}
			vals[i] = reflect.Zero(p)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(p) {
			return nil, &TypeMismatchError{Want: c.sig.String(), Got: signatureOfArgs(args).String()}
		}
		vals[i] = v
	}
	return vals, nil
}

// AppendSignatureDescription appends the event argument description,
// e.g. "[int, float64]". Intended for diagnostics.
func (c *Collection) AppendSignatureDescription(sb *strings.Builder) {
	sb.WriteString(c.sig.String())
}

// String returns the event argument description.
func (c *Collection) String() string {
	return c.sig.String()
}

// funcParams builds the signature of a function type's parameter list.
func funcParams(t reflect.Type) Signature {
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	return NewSignature(params...)
}

// nilable reports whether the zero value of t can stand in for nil.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
