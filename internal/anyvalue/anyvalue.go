// Package anyvalue implements a type-erased single-value container,
// used to carry heterogeneous node outputs through the scheduler.
package anyvalue

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mohae/deepcopy"
)

// ErrEmpty is returned by Type and As when the Value holds nothing.
var ErrEmpty = errors.New("anyvalue: empty value")

// ErrBadCast is returned by As when the requested type does not match the
// Value's stored type.
var ErrBadCast = errors.New("anyvalue: bad cast")

// Value holds exactly one value of an arbitrary concrete type, plus a tag
// identifying that type. The zero Value is empty.
type Value struct {
	v   any
	typ reflect.Type
	set bool
}

// New constructs a Value holding v. The type tag is captured immediately.
func New(v any) Value {
	return Value{v: v, typ: reflect.TypeOf(v), set: true}
}

// IsEmpty reports whether the Value holds nothing.
func (x Value) IsEmpty() bool {
	return !x.set
}

// Type returns the Value's type tag, or ErrEmpty if it is empty.
func (x Value) Type() (reflect.Type, error) {
	if !x.set {
		return nil, ErrEmpty
	}
	return x.typ, nil
}

// As returns an independent deep copy of the value held by v, downcast to T.
// It fails with ErrEmpty if v is empty, or ErrBadCast if v does not hold a
// T.
func As[T any](v Value) (T, error) {
	var zero T
	if !v.set {
		return zero, ErrEmpty
	}
	want := reflect.TypeOf(zero)
	if want != v.typ {
		return zero, fmt.Errorf("%w: want %s, have %s", ErrBadCast, typeName(want), typeName(v.typ))
	}
	copied := deepcopy.Copy(v.v)
	out, ok := copied.(T)
	if !ok {
		// reached only when T is an interface type and v holds nil: both
		// tags are then nil, and a nil interface value does not assert to T
		return zero, fmt.Errorf("%w: deep copy produced %T, want %s", ErrBadCast, copied, typeName(want))
	}
	return out, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
