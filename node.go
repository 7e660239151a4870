package taskgraph

import (
	"fmt"

	"github.com/joeycumines/go-taskgraph/internal/anyvalue"
)

// node is the uniform, type-erased shape every registered computation is
// reduced to: an opaque body producing one anyvalue.Value. Unary, binary,
// and method-receiver registrations all end up as one of the two concrete
// node kinds below; AddMethod adapts its receiver and method into a unary
// body, since a Go method value is already a plain func.
type node interface {
	execute() error
	result() anyvalue.Value
}

// Arg is a registration-time argument slot: either an immediate value of
// type T, or a reference to the future output of a previously registered
// node.
type Arg[T any] struct {
	isFuture bool
	id       NodeID
	value    T
}

// Immediate constructs an Arg carrying a concrete value.
func Immediate[T any](v T) Arg[T] {
	return Arg[T]{value: v}
}

// FromFuture constructs an Arg referencing a previously registered node's
// output.
func FromFuture[T any](f Future[T]) Arg[T] {
	return Arg[T]{isFuture: true, id: f.id}
}

// Future is an opaque handle to the eventual output of a registered node,
// tagged with the type the consumer expects that output to have. Obtained
// via FutureOf.
type Future[T any] struct {
	id NodeID
}

// resolver returns a func producing the runtime value for an Arg, along
// with the Arg's in-degree contribution (0 for immediate, 1 for future).
func resolver[T any](s *Scheduler, arg Arg[T]) (resolve func() (T, error), degree int) {
	if !arg.isFuture {
		v := arg.value
		return func() (T, error) { return v, nil }, 0
	}

	producer := arg.id
	return func() (T, error) {
		av := s.nodeResult(producer)
		if av.IsEmpty() {
			var zero T
			return zero, fmt.Errorf("node %d: %w", producer, ErrMissingProducer)
		}
		return anyvalue.As[T](av)
	}, 1
}

type unaryNode[A, R any] struct {
	resolve func() (A, error)
	f       func(A) R
	res     anyvalue.Value
}

func (n *unaryNode[A, R]) execute() (err error) {
	defer recoverIntoErr(&err)

	a, err := n.resolve()
	if err != nil {
		return err
	}
	n.res = anyvalue.New(n.f(a))
	return nil
}

func (n *unaryNode[A, R]) result() anyvalue.Value { return n.res }

type binaryNode[A, B, R any] struct {
	resolveA func() (A, error)
	resolveB func() (B, error)
	f        func(A, B) R
	res      anyvalue.Value
}

func (n *binaryNode[A, B, R]) execute() (err error) {
	defer recoverIntoErr(&err)

	// left before right, per the declared slot order.
	a, err := n.resolveA()
	if err != nil {
		return err
	}
	b, err := n.resolveB()
	if err != nil {
		return err
	}
	n.res = anyvalue.New(n.f(a, b))
	return nil
}

func (n *binaryNode[A, B, R]) result() anyvalue.Value { return n.res }

func recoverIntoErr(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
