// errors_test.go: Tests for the enhanced error builder and category helpers
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	base := NewStd("connection refused")
	err := New(base).
		Component("datastore").
		Category(CategoryDatabase).
		Context("operation", "save_reading").
		Context("detector_id", "a1b2c3d4").
		Build()

	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, "datastore", err.Component)
	assert.Equal(t, CategoryDatabase, err.Category)
	assert.Equal(t, "save_reading", err.GetContext()["operation"])
	assert.True(t, Is(err, base), "built error must unwrap to the original")
}

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("boom %d", 42).Build()
	assert.Equal(t, "boom 42", err.Error())
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	notFound := Newf("detector a1b2c3d4 not found").Category(CategoryNotFound).Build()
	validation := Newf("name must not be empty").Category(CategoryValidation).Build()

	t.Run("Is matches by category", func(t *testing.T) {
		other := Newf("something else missing").Category(CategoryNotFound).Build()
		assert.True(t, Is(notFound, other))
		assert.False(t, Is(notFound, validation))
	})

	t.Run("helpers", func(t *testing.T) {
		assert.True(t, IsNotFound(notFound))
		assert.False(t, IsNotFound(validation))
		assert.True(t, IsValidation(validation))
		assert.False(t, IsValidation(notFound))
	})

	t.Run("wrapped errors keep their category", func(t *testing.T) {
		wrapped := fmt.Errorf("fleet status: %w", notFound)
		assert.True(t, IsNotFound(wrapped))
		assert.Equal(t, CategoryNotFound, CategoryOf(wrapped))
	})

	t.Run("plain errors are generic", func(t *testing.T) {
		plain := NewStd("plain")
		assert.Equal(t, CategoryGeneric, CategoryOf(plain))
		assert.False(t, IsNotFound(plain))
	})
}

func TestGetContextReturnsCopy(t *testing.T) {
	t.Parallel()

	err := Newf("boom").Context("key", "value").Build()
	ctx := err.GetContext()
	require.NotNil(t, ctx)
	ctx["key"] = "mutated"
	assert.Equal(t, "value", err.GetContext()["key"])
}
