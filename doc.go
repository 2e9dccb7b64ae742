// Package blackboard provides a reactive shared-state container for
// coordinating concurrent decision-making processes in a single Go process.
//
// # Overview
//
// A blackboard is a named set of fields that state machines, behavior trees,
// sensors, and actuators read and write without knowing about each other.
// The package is organized around three concepts:
//
//  1. Fields: primitive mutable cells written through Set
//  2. Derived fields: read-only cells recomputed whenever a dependency changes
//  3. Waits: goroutine suspension until a field's value satisfies a predicate
//
// # Basic Usage
//
// Declare fields on a board; derived fields bind a pure combine function to
// an explicit dependency list:
//
//	board := blackboard.New(blackboard.WithName("robot"))
//
//	a, _ := blackboard.NewField(board, "a", 1)
//	b, _ := blackboard.NewField(board, "b", 2)
//
//	c, _ := blackboard.Derive2(board, "c", a, b,
//		func(a, b int) (int, error) { return a + b, nil })
//
//	d, _ := blackboard.Derive1(board, "d", c,
//		func(c int) (int, error) { return 2 * c, nil })
//
//	c.Get() // 3, computed eagerly at construction
//	a.Set(5)
//	c.Get() // 7
//	d.Get() // 14
//
// Derived fields may depend on other derived fields; the dependency relation
// must be acyclic and every dependency must live on the same board. Both are
// validated at construction and reported as *ConfigError.
//
// # Propagation
//
// Set stores the new value unconditionally (no equality short-circuit) and
// recomputes every transitively dependent derived field exactly once, in
// topological order, inside one critical section. A field reachable through
// several paths (diamond) recomputes once, after all of its own dependencies
// have settled. Reads never recompute: Get returns the cached value in O(1).
//
// If a combine function fails, the pass aborts: the failing field and
// everything downstream keep their previous values, and the triggering Set
// returns a *ComputeError. Fields updated earlier in the pass stay updated.
//
// # Waiting
//
// Any goroutine can suspend until a field reaches a state it cares about:
//
//	// equality form
//	v, err := blackboard.WaitValue(ctx, c, 7)
//
//	// general predicate
//	v, err := c.WaitUntil(ctx, func(v int) bool { return v > 10 })
//
//	// transition form: only a change observed after registration matches
//	v, err := c.WaitTransition(ctx, func(from, to int) bool { return from < 10 && to >= 10 })
//
// WaitUntil resolves immediately when the current value already satisfies
// the predicate, so there is no missed-wakeup race. Otherwise the caller
// suspends until a pass produces a satisfying value or ctx is cancelled;
// each waiter resolves exactly once, with either the satisfying value or the
// context's error, never both. Waiters on one field resolve in the order
// their predicates become satisfied, and a waiter on a derived field always
// observes a value consistent with the whole pass that woke it.
//
// Predicates and combine functions run while the board's lock is held. They
// must be pure: no calls back into the board, no side effects.
//
// # Dynamic Access
//
// Fields are normally used through their typed handles, but the board also
// exposes a name-keyed surface for tooling and composition layers:
//
//	board.SetValue("a", 5)              // *UsageError for derived fields
//	board.SetValues(map[string]any{     // one pass, shared dependents
//		"a": 5,                         // recompute once
//		"b": 6,
//	})
//	board.Snapshot()                    // consistent map of every field
//	board.DependencyGraph()             // name -> dependent names
//
// # Extensions
//
// Extensions hook the write path (middleware pattern) for logging, timing,
// and debugging; see the extensions subpackage:
//
//	board := blackboard.New(
//		blackboard.WithExtension(extensions.NewLoggingExtension(handler)),
//	)
//
// # Concurrency
//
// All methods are safe for concurrent use. Get and Set never suspend the
// caller beyond the board's internal lock; only WaitUntil, WaitTransition,
// and WaitValue block, and they are cancellable through their context. One
// board's passes are serialized; independent boards share nothing.
package blackboard
