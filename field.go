package blackboard

import "context"

// AnyField is the type-erased view of a field, used for dependency tracking,
// the name-keyed board API, and tooling. The concrete types are *Field[T]
// and *Derived[T]; the interface cannot be implemented outside this package.
type AnyField interface {
	// Name returns the field's name, unique within its board.
	Name() string
	// Board returns the board the field was declared on.
	Board() *Board
	// Value returns the current value without static typing. Prefer the
	// typed Get on *Field[T] / *Derived[T] where the handle is available.
	Value() any
	// IsDerived reports whether the field is computed from other fields.
	IsDerived() bool
	// GetTag retrieves a metadata tag value from the field
	GetTag(tag any) (any, bool)
	// SetTag stores a metadata tag value on the field
	SetTag(tag any, val any)

	// wakeLocked evaluates the field's waiters against its current value.
	wakeLocked()
	// currentValueAny reads the value while the board lock is already held.
	currentValueAny() any
}

// Source is the readable surface shared by *Field[T] and *Derived[T]. It is
// what derived-field constructors accept as dependencies and what the wait
// helpers operate on.
type Source[T any] interface {
	AnyField
	// Get returns the current value. It never blocks beyond the board's
	// internal lock and never triggers recomputation.
	Get() T
	// WaitUntil suspends the calling goroutine until the field's value
	// satisfies pred, returning the satisfying value. If the current value
	// already satisfies pred it returns immediately.
	WaitUntil(ctx context.Context, pred func(T) bool) (T, error)
	// WaitTransition suspends until a completed set/propagation pass moves
	// the field's value such that pred(from, to) holds. Unlike WaitUntil,
	// the value at call time alone never satisfies a transition wait.
	WaitTransition(ctx context.Context, pred func(from, to T) bool) (T, error)

	// current reads the value without locking; only valid while the board
	// lock is held (dependency reads during propagation).
	current() T
}

// cell is the storage shared by primitive and derived fields: the value, the
// previous value of the latest completed pass, the tag map, and the waiter
// registry. All value and waiter access is guarded by the owning board's
// lock.
type cell[T any] struct {
	b       *Board
	name    string
	tags    map[any]any
	value   T
	prev    T
	waiters []*waiter[T]
}

func (c *cell[T]) Name() string {
	return c.name
}

func (c *cell[T]) Board() *Board {
	return c.b
}

func (c *cell[T]) Get() T {
	c.b.mu.RLock()
	defer c.b.mu.RUnlock()
	return c.value
}

func (c *cell[T]) Value() any {
	return c.Get()
}

func (c *cell[T]) GetTag(tag any) (any, bool) {
	val, ok := c.tags[tag]
	return val, ok
}

func (c *cell[T]) SetTag(tag any, val any) {
	c.tags[tag] = val
}

func (c *cell[T]) current() T {
	return c.value
}

func (c *cell[T]) currentValueAny() any {
	return c.value
}

// Field is a primitive mutable cell holding a value of type T. Fields are
// created on a board with NewField and written through Set; any number of
// goroutines may Get, Set, and wait concurrently.
type Field[T any] struct {
	cell[T]
}

// IsDerived always reports false for a primitive field.
func (f *Field[T]) IsDerived() bool {
	return false
}

// Set replaces the stored value unconditionally and runs a full propagation
// pass: every derived field transitively downstream is recomputed exactly
// once, in dependency order, and then the waiters of every updated field are
// evaluated. Set never blocks on waiters.
//
// Equality with the previous value is not checked: setting an unchanged
// value still propagates and still re-evaluates waiters.
func (f *Field[T]) Set(v T) error {
	b := f.b
	op := &Operation{Kind: OpSet, Field: f, Board: b}
	return b.runPass(op, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		f.prev, f.value = f.value, v
		return b.propagateLocked([]AnyField{f})
	})
}

// storeAny implements the dynamic (name-keyed) write path.
func (f *Field[T]) checkAny(v any) error {
	if _, ok := v.(T); !ok {
		var zero T
		return newUsageError("set", f.name, typeMismatch(zero, v))
	}
	return nil
}

func (f *Field[T]) storeAnyLocked(v any) {
	f.prev, f.value = f.value, v.(T)
}

// FieldOption is a modifier applied to a field at construction
type FieldOption func(AnyField)

// WithTag returns an option that sets a metadata tag on a field
func WithTag[T any](tag Tag[T], val T) FieldOption {
	return func(f AnyField) {
		tag.Set(f, val)
	}
}

// NewField declares a primitive field on a board with an initial value. The
// name must be unique on the board; a duplicate is a *ConfigError.
func NewField[T any](b *Board, name string, initial T, opts ...FieldOption) (*Field[T], error) {
	if b == nil {
		return nil, newConfigError("", name, "field declared without a board")
	}
	f := &Field[T]{
		cell: cell[T]{
			b:     b,
			name:  name,
			tags:  make(map[any]any),
			value: initial,
			prev:  initial,
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.registerLocked(f); err != nil {
		return nil, err
	}
	return f, nil
}

// WaitValue suspends until the field's value equals target, returning the
// satisfying value. It is the equality form of Source.WaitUntil and resolves
// immediately when the field already equals target.
func WaitValue[T comparable](ctx context.Context, src Source[T], target T) (T, error) {
	return src.WaitUntil(ctx, func(v T) bool { return v == target })
}
