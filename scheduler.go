package taskgraph

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-taskgraph/internal/anyvalue"
	"github.com/joeycumines/go-taskgraph/internal/workerpool"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NodeID identifies a registered node. Ids are dense, assigned in
// registration order starting at 0, and stable for the scheduler's
// lifetime.
type NodeID int

// Scheduler owns the node table, edge table, and worker pool for one task
// graph. Construct with NewScheduler. The zero Scheduler is not usable.
type Scheduler struct {
	mu         sync.Mutex
	nodes      []node
	successors [][]NodeID
	inDegree   []int
	executed   []atomic.Bool
	started    bool

	pool   *workerpool.Pool
	logger *logiface.Logger[*stumpy.Event]

	failOnce sync.Once
	failErr  error
}

// NewScheduler constructs a Scheduler with a fixed worker pool (default
// size 4; see WithWorkerCount).
func NewScheduler(opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)
	return &Scheduler{
		pool:   workerpool.New(cfg.workerCount),
		logger: cfg.logger,
	}
}

// Close stops the worker pool and joins its workers. Safe to call more than
// once.
func (s *Scheduler) Close() {
	s.pool.Stop()
}

// Add registers a unary node: f applied to arg. Returns the new node's id.
// Panics if execution has already begun.
func Add[A, R any](s *Scheduler, f func(A) R, arg Arg[A]) NodeID {
	return addUnary(s, f, arg, "unary")
}

// AddMethod registers a node that invokes method m on recv with arg,
// equivalent in effect to Add with m bound to recv (a Go method value is
// already a plain func, so this shares the unary node's implementation).
func AddMethod[C, A, R any](s *Scheduler, recv C, m func(C, A) R, arg Arg[A]) NodeID {
	bound := func(a A) R { return m(recv, a) }
	return addUnary(s, bound, arg, "method")
}

func addUnary[A, R any](s *Scheduler, f func(A) R, arg Arg[A], kind string) NodeID {
	s.mu.Lock()

	if s.started {
		s.mu.Unlock()
		panic("taskgraph: cannot register nodes after execution has begun")
	}

	resolve, degree := resolver(s, arg)
	id := s.appendNodeLocked(&unaryNode[A, R]{resolve: resolve, f: f}, degree)
	if arg.isFuture {
		s.successors[arg.id] = append(s.successors[arg.id], id)
	}

	s.mu.Unlock()

	s.logNodeRegistered(id, kind)
	return id
}

// Add2 registers a binary node: f applied to (a, b), left before right.
// Panics if execution has already begun.
func Add2[A, B, R any](s *Scheduler, f func(A, B) R, a Arg[A], b Arg[B]) NodeID {
	s.mu.Lock()

	if s.started {
		s.mu.Unlock()
		panic("taskgraph: cannot register nodes after execution has begun")
	}

	resolveA, degA := resolver(s, a)
	resolveB, degB := resolver(s, b)
	id := s.appendNodeLocked(&binaryNode[A, B, R]{resolveA: resolveA, resolveB: resolveB, f: f}, degA+degB)
	if a.isFuture {
		s.successors[a.id] = append(s.successors[a.id], id)
	}
	if b.isFuture {
		s.successors[b.id] = append(s.successors[b.id], id)
	}

	s.mu.Unlock()

	s.logNodeRegistered(id, "binary")
	return id
}

// appendNodeLocked appends n to the node table with the given in-degree and
// returns its id. Must be called with s.mu held.
func (s *Scheduler) appendNodeLocked(n node, degree int) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.successors = append(s.successors, nil)
	s.inDegree = append(s.inDegree, degree)
	s.executed = append(s.executed, atomic.Bool{})
	return id
}

// FutureOf returns a handle to the eventual output of id, tagged with the
// type T the caller expects it to have. Fails with ErrUnknownTask if id is
// not registered.
func FutureOf[T any](s *Scheduler, id NodeID) (Future[T], error) {
	if !s.validID(id) {
		return Future[T]{}, ErrUnknownTask
	}
	return Future[T]{id: id}, nil
}

func (s *Scheduler) validID(id NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id >= 0 && int(id) < len(s.nodes)
}

func (s *Scheduler) nodeResult(id NodeID) anyvalue.Value {
	// The node table is append-only and finalized before execution begins
	// (invariants I1/I5), so reading s.nodes[id] here needs no lock; the
	// value it returns is only meaningful once the happens-before edge
	// established by the scheduler mutex in dispatch has been crossed.
	return s.nodes[id].result()
}

// ExecuteAll blocks until every registered node has executed, or ctx is
// canceled. Safe to call repeatedly; already-executed nodes are a no-op.
func ExecuteAll(ctx context.Context, s *Scheduler) error {
	s.mu.Lock()
	s.started = true

	ready := 0
	for id := range s.nodes {
		if s.inDegree[id] == 0 {
			ready++
			rid := NodeID(id)
			s.pool.Enqueue(func() { s.dispatch(rid) })
		}
	}
	total := len(s.nodes)
	s.mu.Unlock()

	s.logExecutionStarted(ready, total)

	idle := make(chan struct{})
	go func() {
		s.pool.WaitIdle()
		close(idle)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-idle:
	}

	s.logExecutionFinished()

	if s.failErr != nil {
		return s.failErr
	}
	return nil
}

// GetResult blocks until id (and transitively everything it depends on)
// has executed, then returns its result downcast to T. Fails with
// ErrUnknownTask if id is not registered, or ErrBadCast if id's output is
// not a T.
func GetResult[T any](ctx context.Context, s *Scheduler, id NodeID) (T, error) {
	var zero T

	if !s.validID(id) {
		return zero, ErrUnknownTask
	}

	if err := ExecuteAll(ctx, s); err != nil {
		return zero, err
	}

	return anyvalue.As[T](s.nodeResult(id))
}

// dispatch is the completion unit: run id's body, then release any
// successor whose in-degree reaches zero.
func (s *Scheduler) dispatch(id NodeID) {
	if !s.executed[id].CompareAndSwap(false, true) {
		return // already executed; dedup
	}

	s.logNodeDispatched(id)

	if err := s.nodes[id].execute(); err != nil {
		s.logNodeFailed(id, err)
		s.failOnce.Do(func() {
			s.failErr = &NodeFailureError{NodeID: id, Err: err}
		})
		return // do not release successors of a failed node
	}

	s.logNodeCompleted(id)

	s.mu.Lock()
	for _, succ := range s.successors[id] {
		s.inDegree[succ]--
		if s.inDegree[succ] == 0 {
			rid := succ
			s.pool.Enqueue(func() { s.dispatch(rid) })
		}
	}
	s.mu.Unlock()
}
