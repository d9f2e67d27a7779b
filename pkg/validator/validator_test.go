package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmedash/acmedash/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Alice"),
			validator.MinLen("password", "secret99", 6),
		)
		require.NoError(t, err)
	})

	t.Run("collects every failed rule", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", ""),
			validator.MinLen("password", "abc", 6),
			validator.ValidEmail("email", "nope"),
		)
		require.Error(t, err)

		ve := validator.Extract(err)
		require.Len(t, ve, 3)
		assert.Equal(t, []string{"name", "password", "email"}, ve.Fields())
	})

	t.Run("does not short-circuit on first failure", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("a", ""),
			validator.Required("b", ""),
		)
		ve := validator.Extract(err)
		require.Len(t, ve, 2)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	ve := validator.ValidationErrors{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "password", Message: "must contain at least 6 characters"},
		{Field: "password", Message: "field is required"},
	}

	t.Run("Has and Get", func(t *testing.T) {
		t.Parallel()

		assert.True(t, ve.Has("email"))
		assert.False(t, ve.Has("name"))
		assert.Equal(t, []string{"must contain at least 6 characters", "field is required"}, ve.Get("password"))
		assert.Nil(t, ve.Get("name"))
	})

	t.Run("FieldMap preserves message order", func(t *testing.T) {
		t.Parallel()

		m := ve.FieldMap()
		require.Len(t, m, 2)
		assert.Equal(t, []string{"must be a valid email address"}, m["email"])
		assert.Len(t, m["password"], 2)
	})

	t.Run("Error joins field messages", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, ve.Error(), "email: must be a valid email address")
	})

	t.Run("empty FieldMap is nil", func(t *testing.T) {
		t.Parallel()

		var empty validator.ValidationErrors
		assert.Nil(t, empty.FieldMap())
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.Extract(nil))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.Extract(errors.New("boom")))
		assert.False(t, validator.IsValidationError(errors.New("boom")))
	})

	t.Run("wrapped validation errors", func(t *testing.T) {
		t.Parallel()

		inner := validator.Apply(validator.Required("x", ""))
		wrapped := fmt.Errorf("create invoice: %w", inner)
		assert.True(t, validator.IsValidationError(wrapped))
		assert.Len(t, validator.Extract(wrapped), 1)
	})
}
