package blackboard

// Tag is a type-safe key for field metadata. Tags carry descriptive
// information (labels, units, documentation) that the core ignores but
// extensions and tooling can read.
type Tag[T any] struct {
	key string
}

// NewTag creates a new tag with the given key
func NewTag[T any](key string) Tag[T] {
	return Tag[T]{key: key}
}

// Key returns the tag's key (for debugging)
func (t Tag[T]) Key() string {
	return t.key
}

// Get retrieves the tag value from a field
func (t Tag[T]) Get(f AnyField) (T, bool) {
	val, ok := f.GetTag(t)
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGet retrieves the tag value or panics if not found
func (t Tag[T]) MustGet(f AnyField) T {
	val, ok := t.Get(f)
	if !ok {
		panic("tag " + t.key + " not found")
	}
	return val
}

// GetOrDefault retrieves the tag value or returns a default
func (t Tag[T]) GetOrDefault(f AnyField, defaultVal T) T {
	if val, ok := t.Get(f); ok {
		return val
	}
	return defaultVal
}

// Set stores the tag value on a field
func (t Tag[T]) Set(f AnyField, val T) {
	f.SetTag(t, val)
}

// Description returns the well-known tag for a human-readable field
// description.
func Description() Tag[string] {
	return NewTag[string]("field.description")
}

// Unit returns the well-known tag for a field's unit of measure.
func Unit() Tag[string] {
	return NewTag[string]("field.unit")
}
