package blackboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_InitialValue(t *testing.T) {
	b := New()

	f, err := NewField(b, "a", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, f.Get())
	assert.Equal(t, "a", f.Name())
	assert.Same(t, b, f.Board())
	assert.False(t, f.IsDerived())
}

func TestField_Set(t *testing.T) {
	b := New()

	f, err := NewField(b, "a", 1)
	require.NoError(t, err)

	require.NoError(t, f.Set(5))
	assert.Equal(t, 5, f.Get())

	require.NoError(t, f.Set(5))
	assert.Equal(t, 5, f.Get())
}

func TestField_SetUnchangedValueStillPropagates(t *testing.T) {
	b := New()

	f, err := NewField(b, "a", 1)
	require.NoError(t, err)

	recomputes := 0
	_, err = Derive1(b, "d", f, func(v int) (int, error) {
		recomputes++
		return v, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, recomputes) // eager initial compute

	// Equality is not assumed cheap or even defined for field values, so
	// setting the same value again must re-propagate.
	require.NoError(t, f.Set(1))
	require.NoError(t, f.Set(1))
	assert.Equal(t, 3, recomputes)
}

func TestNewField_DuplicateName(t *testing.T) {
	b := New(WithName("test"))

	_, err := NewField(b, "a", 1)
	require.NoError(t, err)

	_, err = NewField(b, "a", 2.0)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "a", cfgErr.Field)
	assert.Equal(t, "test", cfgErr.Board)
}

func TestNewField_Validation(t *testing.T) {
	b := New()

	_, err := NewField(nil, "a", 1)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewField(b, "", 1)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestField_Tags(t *testing.T) {
	b := New()

	f, err := NewField(b, "temperature", 21.5,
		WithTag(Unit(), "C"),
		WithTag(Description(), "ambient temperature"))
	require.NoError(t, err)

	unit, ok := Unit().Get(f)
	require.True(t, ok)
	assert.Equal(t, "C", unit)

	desc, ok := Description().Get(f)
	require.True(t, ok)
	assert.Equal(t, "ambient temperature", desc)

	_, ok = NewTag[int]("missing").Get(f)
	assert.False(t, ok)
	assert.Equal(t, 7, NewTag[int]("missing").GetOrDefault(f, 7))
}

func TestFieldsAreIndependentAcrossBoards(t *testing.T) {
	b1 := New()
	b2 := New()

	f1, err := NewField(b1, "a", 1)
	require.NoError(t, err)
	f2, err := NewField(b2, "a", 10)
	require.NoError(t, err)

	require.NoError(t, f1.Set(2))

	assert.Equal(t, 2, f1.Get())
	assert.Equal(t, 10, f2.Get())
}
