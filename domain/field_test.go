package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldApply(t *testing.T) {
	current := "old"

	assert.Equal(t, &current, Keep[string]().Apply(&current))
	assert.Nil(t, Clear[string]().Apply(&current))

	got := Set("new").Apply(&current)
	require.NotNil(t, got)
	assert.Equal(t, "new", *got)
	assert.Equal(t, "old", current)
}

func TestFieldZeroValueKeeps(t *testing.T) {
	var f Field[int32]
	assert.True(t, f.IsKeep())
	_, ok := f.Value()
	assert.False(t, ok)
}

func TestFieldRequired(t *testing.T) {
	v, err := Keep[string]().Required("title", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = Set("b").Required("title", "a")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = Clear[string]().Required("title", "a")
	require.Error(t, err)
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
	assert.Contains(t, err.Error(), "title")
}

func TestSetPtr(t *testing.T) {
	assert.True(t, SetPtr[int32](nil).IsKeep())
	n := int32(4)
	v, ok := SetPtr(&n).Value()
	assert.True(t, ok)
	assert.Equal(t, int32(4), v)
}
