package blackboard

import "fmt"

// Derived is a read-only cell whose value is a pure function of one or more
// upstream fields. The cached value is recomputed only as propagation
// fallout of a Set on an upstream primitive, never on read, so Get is O(1)
// and waiter evaluation always sees a value consistent with the latest
// completed pass.
//
// Derived has no Set method: read-only is enforced by the type system. The
// dynamic Board.SetValue path rejects derived fields with a *UsageError.
type Derived[T any] struct {
	cell[T]
	deps    []AnyField
	compute func() (T, error)
}

// IsDerived always reports true for a derived field.
func (d *Derived[T]) IsDerived() bool {
	return true
}

// Dependencies returns the fixed upstream dependency list, in declaration
// order.
func (d *Derived[T]) Dependencies() []AnyField {
	out := make([]AnyField, len(d.deps))
	copy(out, d.deps)
	return out
}

// recomputeLocked re-applies the combine function to the dependencies'
// current values. On failure the previous cached value is left intact.
func (d *Derived[T]) recomputeLocked() error {
	v, err := d.compute()
	if err != nil {
		return &ComputeError{Field: d.name, Cause: err}
	}
	d.prev, d.value = d.value, v
	return nil
}

// registerDerived validates and installs a derived field built by one of the
// DeriveN constructors: dependency checks, eager initial computation, name
// registration, and graph edges, all in one critical section.
func registerDerived[T any](b *Board, d *Derived[T]) (*Derived[T], error) {
	if b == nil {
		return nil, newConfigError("", d.name, "field declared without a board")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, dep := range d.deps {
		if dep == nil {
			return nil, newConfigError(b.name, d.name, "nil dependency")
		}
		if dep.Board() != b {
			return nil, newConfigError(b.name, d.name,
				fmt.Sprintf("dependency %q belongs to a different board", dep.Name()))
		}
	}

	// Initial value is computed eagerly from the dependencies' initial
	// values; a failing combine function surfaces at construction.
	v, err := d.compute()
	if err != nil {
		return nil, &ComputeError{Field: d.name, Cause: err}
	}
	d.value, d.prev = v, v

	if err := b.registerLocked(d); err != nil {
		return nil, err
	}
	for _, dep := range d.deps {
		if err := b.graph.addEdge(dep, d); err != nil {
			b.unregisterLocked(d)
			return nil, err
		}
	}
	return d, nil
}

func boardName(b *Board) string {
	if b == nil {
		return ""
	}
	return b.name
}
