// Package taskgraph implements an in-process task-graph scheduler: a client
// programmatically assembles a DAG of pure computations, then forces
// evaluation of one or all nodes. Independent nodes run in parallel on a
// fixed worker pool; each node's body runs at most once, after all of its
// inputs are available.
//
// # Architecture
//
// Three layers, leaves first:
//
//   - [github.com/joeycumines/go-taskgraph/internal/anyvalue]: a
//     type-erased single-value container, carrying heterogeneous node
//     outputs with a runtime-checked downcast.
//   - [github.com/joeycumines/go-taskgraph/internal/workerpool]: a fixed
//     worker pool draining a shared FIFO, with an idle-wait primitive.
//   - This package: the node registry, edge table, in-degree counters, and
//     the [Scheduler] façade that drives registration and execution.
//
// # Thread Safety
//
// Registration ([Add], [Add2], [AddMethod], [FutureOf]) and execution
// ([ExecuteAll], [GetResult]) are two non-overlapping phases: register the
// full graph first, then execute. Calling [Add], [Add2], or [AddMethod]
// after execution has begun panics; [FutureOf] does not check the phase. Execution itself fans independent nodes out across the
// configured worker pool; [Scheduler] methods used during execution are
// safe for concurrent use by node bodies indirectly (via the pool), though
// node bodies are expected to be pure and must not block on scheduler
// state.
//
// # Error Handling
//
// [ExecuteAll] and [GetResult] return the first node failure observed,
// wrapped as a [*NodeFailureError]. A node whose producer failed is never
// dispatched (its in-degree never reaches zero); independent branches still
// run to completion, and the pool always reaches quiescence before the
// error is surfaced.
package taskgraph
