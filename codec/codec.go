// Package codec converts between textual and typed event argument
// representations. It powers the text-invocation path of the event system:
// a caller supplies one string per event parameter, and the codec produces
// the typed argument values the subscribers expect.
package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is the generic type of an event argument.
type Kind int

const (
	// String arguments need no conversion.
	String Kind = iota
	// Bool arguments are truth values.
	Bool
	// Int arguments are integral numbers.
	Int
	// Double arguments are floating point numbers.
	Double
	// Unsupported marks types that cannot be created from a string.
	Unsupported
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "STRING"
	case Bool:
		return "BOOL"
	case Int:
		return "INT"
	case Double:
		return "DOUBLE"
	default:
		return "UNSUPPORTED"
	}
}

// KindOf returns the generic kind for a parameter type.
// All integral widths map to Int and both float widths map to Double.
// Pointer types keep their own identity in signatures and are not
// convertible from text, so they map to Unsupported.
func KindOf(t reflect.Type) Kind {
	if t == nil {
		return Unsupported
	}
	switch t.Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int
	case reflect.Float32, reflect.Float64:
		return Double
	default:
		return Unsupported
	}
}

// Codec parses string arguments for one fixed parameter list.
// A Codec is created by the owning subscriber collection and shared by all
// text-driven invocation paths targeting that collection.
type Codec struct {
	params []reflect.Type
}

// New creates a codec for the given ordered parameter types.
func New(params []reflect.Type) *Codec {
	c := &Codec{params: make([]reflect.Type, len(params))}
	copy(c.params, params)
	return c
}

// ParameterCount returns the number of parameters.
func (c *Codec) ParameterCount() int {
	return len(c.params)
}

// Kind returns the generic kind of the parameter at the given index.
func (c *Codec) Kind(idx int) Kind {
	return KindOf(c.params[idx])
}

// Parsable reports whether all parameters can be parsed from strings.
func (c *Codec) Parsable() bool {
	for _, t := range c.params {
		if KindOf(t) == Unsupported {
			return false
		}
	}
	return true
}

// ParseAll converts one string per parameter into typed argument values.
// It fails with a *ParseError if the argument count does not match the
// parameter count or if any element fails per-kind conversion, and with a
// *UnsupportedTypeError if a parameter has no text conversion.
func (c *Codec) ParseAll(args []string) ([]reflect.Value, error) {
	if len(args) != len(c.params) {
		return nil, &ParseError{
			Index: -1,
			Err:   fmt.Errorf("wrong number of event arguments, expected %d but got %d", len(c.params), len(args)),
		}
	}

	values := make([]reflect.Value, len(args))
	for i, s := range args {
		v, err := ParseValue(c.params[i], s)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Index = i
				return nil, pe
			}
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Describe appends a bracketed description of the parameter types.
func (c *Codec) Describe(sb *strings.Builder) {
	sb.WriteByte('[')
	for i, t := range c.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(']')
}
