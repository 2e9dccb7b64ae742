package blackboard

import (
	"fmt"
	"sort"
	"sync"
)

// Board is a named collection of fields shared by concurrent readers and
// writers. It owns the dependency graph and the lock that makes every
// set+propagate+wake pass one atomic critical section: a pass never
// interleaves with another pass, registration, or wait on the same board.
//
// Boards are independent of each other; nothing is shared process-wide.
type Board struct {
	mu         sync.RWMutex
	name       string
	fields     map[string]AnyField
	order      []AnyField
	graph      *depGraph
	extensions []Extension
}

// Option is a modifier for boards
type Option func(*Board)

// WithName returns an option that names the board; the name shows up in
// errors and extension output. The default is "board".
func WithName(name string) Option {
	return func(b *Board) {
		b.name = name
	}
}

// WithExtension returns an option that registers an extension on the board
func WithExtension(ext Extension) Option {
	return func(b *Board) {
		if err := b.Use(ext); err != nil {
			panic(err)
		}
	}
}

// New creates an empty board with optional configuration. Fields are then
// declared on it with NewField and the DeriveN constructors.
func New(opts ...Option) *Board {
	b := &Board{
		name:   "board",
		fields: make(map[string]AnyField),
		graph:  newDepGraph(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the board's name
func (b *Board) Name() string {
	return b.name
}

// Use registers an extension on the board
func (b *Board) Use(ext Extension) error {
	b.mu.Lock()
	b.extensions = append(b.extensions, ext)
	sort.SliceStable(b.extensions, func(i, j int) bool {
		return b.extensions[i].Order() < b.extensions[j].Order()
	})
	b.mu.Unlock()

	return ext.Init(b)
}

// Dispose shuts down the board's extensions. Fields and waiters need no
// teardown of their own; pending waits are released through their contexts.
func (b *Board) Dispose() error {
	b.mu.RLock()
	exts := make([]Extension, len(b.extensions))
	copy(exts, b.extensions)
	b.mu.RUnlock()

	for _, ext := range exts {
		if err := ext.Dispose(b); err != nil {
			return fmt.Errorf("disposing extension %s: %w", ext.Name(), err)
		}
	}
	return nil
}

// Field looks up a field by name.
func (b *Board) Field(name string) (AnyField, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.fields[name]
	return f, ok
}

// Names returns the field names in declaration order.
func (b *Board) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, len(b.order))
	for i, f := range b.order {
		names[i] = f.Name()
	}
	return names
}

// Snapshot returns the current value of every field, keyed by name. The
// snapshot is taken in one critical section, so it is consistent: derived
// values in it match their dependencies' values in it.
func (b *Board) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	snap := make(map[string]any, len(b.order))
	for _, f := range b.order {
		snap[f.Name()] = valueLocked(f)
	}
	return snap
}

// Value returns the current value of the named field.
func (b *Board) Value(name string) (any, error) {
	f, ok := b.Field(name)
	if !ok {
		return nil, newUsageError("get", name, "unknown field")
	}
	return f.Value(), nil
}

// SetValue writes a primitive field through the dynamic, name-keyed API.
// Unknown names, derived fields, and mismatched value types are usage
// errors. Propagation semantics are identical to Field.Set.
func (b *Board) SetValue(name string, v any) error {
	b.mu.RLock()
	f, ok := b.fields[name]
	b.mu.RUnlock()
	if !ok {
		return newUsageError("set", name, "unknown field")
	}
	s, ok := f.(settable)
	if !ok {
		return newUsageError("set", name, "cannot set a derived field")
	}
	if err := s.checkAny(v); err != nil {
		return err
	}

	op := &Operation{Kind: OpSet, Field: f, Board: b}
	return b.runPass(op, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		s.storeAnyLocked(v)
		return b.propagateLocked([]AnyField{f})
	})
}

// SetValues writes several primitive fields in a single propagation pass:
// every derived field downstream of any of them recomputes exactly once,
// after all roots hold their new values. Validation is all-or-nothing; no
// field is written if any assignment is invalid.
func (b *Board) SetValues(values map[string]any) error {
	type assignment struct {
		field settable
		any   AnyField
		value any
	}

	b.mu.RLock()
	assignments := make([]assignment, 0, len(values))
	for name, v := range values {
		f, ok := b.fields[name]
		if !ok {
			b.mu.RUnlock()
			return newUsageError("set", name, "unknown field")
		}
		s, ok := f.(settable)
		if !ok {
			b.mu.RUnlock()
			return newUsageError("set", name, "cannot set a derived field")
		}
		if err := s.checkAny(v); err != nil {
			b.mu.RUnlock()
			return err
		}
		assignments = append(assignments, assignment{field: s, any: f, value: v})
	}
	// Deterministic root order regardless of map iteration.
	sort.Slice(assignments, func(i, j int) bool {
		return b.graph.seq[assignments[i].any] < b.graph.seq[assignments[j].any]
	})
	b.mu.RUnlock()

	if len(assignments) == 0 {
		return nil
	}

	op := &Operation{Kind: OpBatch, Board: b}
	return b.runPass(op, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		roots := make([]AnyField, len(assignments))
		for i, a := range assignments {
			a.field.storeAnyLocked(a.value)
			roots[i] = a.any
		}
		return b.propagateLocked(roots)
	})
}

// DependencyGraph exports the board's topology as a map from field name to
// the names of its direct dependents, for debugging and tooling.
func (b *Board) DependencyGraph() map[string][]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string][]string, len(b.order))
	for _, f := range b.order {
		deps := b.graph.dependents(f)
		names := make([]string, len(deps))
		for i, d := range deps {
			names[i] = d.Name()
		}
		out[f.Name()] = names
	}
	return out
}

// settable is the dynamic write surface implemented by *Field[T] only.
type settable interface {
	checkAny(v any) error
	storeAnyLocked(v any)
}

// recomputable is implemented by *Derived[T] only.
type recomputable interface {
	recomputeLocked() error
}

// registerLocked installs a field under the board lock.
func (b *Board) registerLocked(f AnyField) error {
	if f.Name() == "" {
		return newConfigError(b.name, "", "empty field name")
	}
	if _, exists := b.fields[f.Name()]; exists {
		return newConfigError(b.name, f.Name(), "duplicate field name")
	}
	b.fields[f.Name()] = f
	b.order = append(b.order, f)
	b.graph.addNode(f)
	return nil
}

// unregisterLocked rolls back a failed derived-field registration.
func (b *Board) unregisterLocked(f AnyField) {
	delete(b.fields, f.Name())
	for i, existing := range b.order {
		if existing == f {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.graph.removeNode(f)
}

// propagateLocked runs one pass: recompute the affected derived fields in
// topological order, then evaluate waiters. The caller has already stored
// the roots' new values. On a compute failure the pass aborts — fields
// later in the order keep their previous values — but fields that did
// update, including the roots, still get their waiters evaluated.
func (b *Board) propagateLocked(roots []AnyField) error {
	order, err := b.graph.affected(roots)
	if err != nil {
		return err
	}

	updated := append([]AnyField(nil), roots...)
	var passErr error
	for _, f := range order {
		if err := f.(recomputable).recomputeLocked(); err != nil {
			passErr = err
			break
		}
		updated = append(updated, f)
	}

	// Waiters run only after recomputation has settled, so a waiter on a
	// derived field always observes values consistent with this pass.
	for _, f := range updated {
		f.wakeLocked()
	}
	return passErr
}

// runPass threads a set operation through the extension chain, innermost
// last registered (middleware pattern, matching registration Order).
func (b *Board) runPass(op *Operation, apply func() error) error {
	b.mu.RLock()
	exts := make([]Extension, len(b.extensions))
	copy(exts, b.extensions)
	b.mu.RUnlock()

	next := apply
	for i := len(exts) - 1; i >= 0; i-- {
		ext := exts[i]
		currentNext := next
		next = func() error {
			return ext.Wrap(currentNext, op)
		}
	}

	err := next()
	if err != nil {
		for _, ext := range exts {
			ext.OnError(err, op, b)
		}
	}
	return err
}

// valueLocked reads a field's value while the board lock is already held.
func valueLocked(f AnyField) any {
	return f.currentValueAny()
}
