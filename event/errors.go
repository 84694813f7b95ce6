package event

import (
	"fmt"
	"reflect"

	"github.com/evbase/escore/ecode"
)

// DuplicateEventError reports a second registration of an existing name.
type DuplicateEventError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateEventError) Error() string {
	return ecode.AlreadyExist(fmt.Sprintf("event %q", e.Name))
}

// TypeMismatchError reports a signature conflict: an event was looked up or
// re-resolved with a signature different from the one on record, or argument
// values did not fit the registered signature.
type TypeMismatchError struct {
	// Name is the event name, empty when the conflict is between a
	// collection and concrete argument values.
	Name string
	// Want is the registered signature description.
	Want string
	// Got is the requested signature description.
	Got string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	subject := "signature"
	if e.Name != "" {
		subject = fmt.Sprintf("signature for event %q", e.Name)
	}
	return fmt.Sprintf("%s: registered %s, requested %s", ecode.Mismatch(subject), e.Want, e.Got)
}

// InvocationError reports a subscriber that cannot be registered or called:
// a non-function value, a variadic function, or a function returning a value
// without the ignore-result opt-in.
type InvocationError struct {
	// Type is the offending subscriber type, may be nil.
	Type reflect.Type
	// Reason describes the rejection.
	Reason string
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("%s subscriber: %s", ecode.Invalid(), e.Reason)
	}
	return fmt.Sprintf("%s subscriber %s: %s", ecode.Invalid(), e.Type, e.Reason)
}
