package event

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSignatureEqual(t *testing.T) {
	a := NewSignature(reflect.TypeOf(0), reflect.TypeOf(0.0))
	b := NewSignature(reflect.TypeOf(0), reflect.TypeOf(0.0))
	if !a.Equal(b) {
		t.Fatalf("equal parameter lists compare unequal: %s vs %s", a, b)
	}
	if a.Key() != b.Key() {
		t.Fatalf("fingerprints differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestSignatureOrderSensitive(t *testing.T) {
	a := NewSignature(reflect.TypeOf(0), reflect.TypeOf(""))
	b := NewSignature(reflect.TypeOf(""), reflect.TypeOf(0))
	if a.Equal(b) {
		t.Fatalf("signatures with swapped parameter order compare equal: %s", a)
	}
}

func TestSignatureWidthDistinct(t *testing.T) {
	a := NewSignature(reflect.TypeOf(int32(0)))
	b := NewSignature(reflect.TypeOf(int64(0)))
	if a.Equal(b) {
		t.Fatal("int32 and int64 signatures compare equal")
	}
}

func TestSignaturePointerDistinct(t *testing.T) {
	a := NewSignature(reflect.TypeOf(0))
	b := NewSignature(reflect.TypeOf((*int)(nil)))
	if a.Equal(b) {
		t.Fatal("int and *int signatures compare equal")
	}
}

func TestSignatureEmpty(t *testing.T) {
	a := NewSignature()
	b := NewSignature()
	if !a.Equal(b) {
		t.Fatal("empty signatures compare unequal")
	}
	if a.Len() != 0 {
		t.Fatalf("Len = %d, want 0", a.Len())
	}
	if a.String() != "[]" {
		t.Fatalf("String = %q, want %q", a.String(), "[]")
	}
}

func TestSignatureString(t *testing.T) {
	s := NewSignature(reflect.TypeOf(0), reflect.TypeOf(0.0))
	if s.String() != "[int, float64]" {
		t.Fatalf("String = %q, want %q", s.String(), "[int, float64]")
	}
}

func TestSignatureOfFunc(t *testing.T) {
	s, err := SignatureOfFunc(func(name string, count int) {})
	if err != nil {
		t.Fatalf("SignatureOfFunc failed: %v", err)
	}
	want := NewSignature(reflect.TypeOf(""), reflect.TypeOf(0))
	if !s.Equal(want) {
		t.Fatalf("signature = %s, want %s", s, want)
	}
}

func TestSignatureOfFuncRejectsNonFunc(t *testing.T) {
	for _, fn := range []any{nil, 42, "not a func"} {
		_, err := SignatureOfFunc(fn)
		var ie *InvocationError
		if !errors.As(err, &ie) {
			t.Errorf("SignatureOfFunc(%v): expected InvocationError, got %v", fn, err)
		}
	}
}

func TestSignatureOfFuncRejectsVariadic(t *testing.T) {
	_, err := SignatureOfFunc(func(args ...int) {})
	var ie *InvocationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvocationError, got %v", err)
	}
}

func TestSignatureParamsCopy(t *testing.T) {
	s := NewSignature(reflect.TypeOf(0), reflect.TypeOf(""))
	ps := s.Params()
	ps[0] = reflect.TypeOf(0.0)
	if s.Params()[0] != reflect.TypeOf(0) {
		t.Fatal("mutating the returned parameter slice changed the signature")
	}
}
