package event

import (
	"reflect"
	"strings"
)

// Signature is the ordered list of parameter types that defines an event's
// shape. Two signatures are equal when their fingerprints are equal; the
// fingerprint is an order-sensitive composite key over the canonical
// parameter type identifiers.
//
// Go values carry no reference or top-level qualifier distinctions, so no
// further normalization is applied; pointer types remain distinct from their
// element types.
type Signature struct {
	params []reflect.Type
	key    string
}

// NewSignature creates a signature from the given ordered parameter types.
func NewSignature(params ...reflect.Type) Signature {
	ps := make([]reflect.Type, len(params))
	copy(ps, params)
	return Signature{params: ps, key: fingerprint(ps)}
}

// SignatureOfFunc derives a signature from the parameter list of fn.
// fn must be a non-variadic function.
func SignatureOfFunc(fn any) (Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return Signature{}, &InvocationError{Type: t, Reason: "subscriber is not a function"}
	}
	if t.IsVariadic() {
		return Signature{}, &InvocationError{Type: t, Reason: "variadic subscribers are not supported"}
	}
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	return NewSignature(params...), nil
}

// signatureOfArgs derives a signature from concrete argument values.
// Untyped nil arguments carry no type information and are rejected by the
// argument binding later on.
func signatureOfArgs(args []any) Signature {
	params := make([]reflect.Type, len(args))
	for i, a := range args {
		params[i] = reflect.TypeOf(a)
	}
	return NewSignature(params...)
}

// Len returns the number of parameters.
func (s Signature) Len() int {
	return len(s.params)
}

// Params returns a copy of the ordered parameter types.
func (s Signature) Params() []reflect.Type {
	ps := make([]reflect.Type, len(s.params))
	copy(ps, s.params)
	return ps
}

// Key returns the signature fingerprint.
func (s Signature) Key() string {
	return s.key
}

// Equal reports whether two signatures describe the same parameter list.
func (s Signature) Equal(other Signature) bool {
	return s.key == other.key
}

// String returns a bracketed description of the parameter types,
// e.g. "[int, float64]".
func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range s.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(t))
	}
	sb.WriteByte(']')
	return sb.String()
}

// fingerprint builds the order-sensitive composite key for a parameter list.
func fingerprint(params []reflect.Type) string {
	if len(params) == 0 {
		return "()"
	}
	keys := make([]string, len(params))
	for i, t := range params {
		keys[i] = typeKey(t)
	}
	return strings.Join(keys, "|")
}

// typeKey returns a stable identifier for one parameter type. Named types
// include their package path so identically named types from different
// packages never collide.
func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	if t.Kind() == reflect.Ptr {
		return "*" + typeKey(t.Elem())
	}
	return t.String()
}

// typeName returns the display name of a parameter type.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
