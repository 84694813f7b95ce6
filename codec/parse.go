package codec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/evbase/escore/ecode"
)

// ParseError reports a malformed argument string or a wrong argument count.
type ParseError struct {
	// Index is the zero-based argument position, or -1 for a count mismatch.
	Index int
	// Value is the offending string, empty for a count mismatch.
	Value string
	// Err describes the failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Index < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("argument %d %s: %v", e.Index, ecode.Invalid(), e.Err)
}

// Unwrap returns the underlying failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError reports a parameter type with no text conversion.
type UnsupportedTypeError struct {
	Type reflect.Type
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return ecode.Unsupported(fmt.Sprintf("parameter type %s", e.Type))
}

// ParseValue converts a single string to a value of the given type.
//
// Conversion rules per kind:
//   - String: identity, always succeeds.
//   - Bool: case-insensitive exact match of "true" or "false".
//   - Int/Double: numeric extraction from the head of the string. Trailing
//     non-numeric characters after a valid numeric prefix are accepted, so
//     "10x" parses to 10 while "x10" fails. This mirrors stream-style
//     extraction and is the documented policy for text invocation.
//   - Unsupported: always fails with *UnsupportedTypeError.
func ParseValue(t reflect.Type, s string) (reflect.Value, error) {
	switch KindOf(t) {
	case String:
		return reflect.ValueOf(s).Convert(t), nil

	case Bool:
		if strings.EqualFold(s, "true") {
			return reflect.ValueOf(true).Convert(t), nil
		}
		if strings.EqualFold(s, "false") {
			return reflect.ValueOf(false).Convert(t), nil
		}
		return reflect.Value{}, &ParseError{
			Value: s,
			Err:   fmt.Errorf("illegal boolean value %q", s),
		}

	case Int:
		var n int64
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return reflect.Value{}, &ParseError{
				Value: s,
				Err:   fmt.Errorf("illegal integer value %q", s),
			}
		}
		return reflect.ValueOf(n).Convert(t), nil

	case Double:
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
			return reflect.Value{}, &ParseError{
				Value: s,
				Err:   fmt.Errorf("illegal floating point value %q", s),
			}
		}
		return reflect.ValueOf(f).Convert(t), nil

	default:
		return reflect.Value{}, &UnsupportedTypeError{Type: t}
	}
}
