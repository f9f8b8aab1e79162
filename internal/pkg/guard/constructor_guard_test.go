package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type pickupSlot struct {
		value string
		guard guard.ConstructorGuard
	}
	errSlotNotConstructed := errors.New("pickupSlot must be created via newPickupSlot")

	newPickupSlot := func(v string) pickupSlot {
		return pickupSlot{value: v, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructed value passes", func(t *testing.T) {
		slot := newPickupSlot("18:30")
		require.NoError(t, slot.guard.Validate(errSlotNotConstructed))
	})

	t.Run("struct literal fails", func(t *testing.T) {
		slot := pickupSlot{value: "18:30"}
		require.ErrorIs(t, slot.guard.Validate(errSlotNotConstructed), errSlotNotConstructed)
	})
}
