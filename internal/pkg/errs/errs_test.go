package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "K7Q2M9XA1B")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "K7Q2M9XA1B", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: K7Q2M9XA1B", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("shopId", "s1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shopId, ID is: s1 (cause: database connection failed)",
			err.Error())
	})

	t.Run("non string ids are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("position", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("currency")

		assert.Equal(t, "currency", err.ParamName)
		assert.Equal(t, "value is invalid: currency", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be 3 letters")
		err := errs.NewValueIsInvalidErrorWithCause("currency", cause)

		assert.Equal(t, "value is invalid: currency (cause: must be 3 letters)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91, -90, 90)

		assert.Equal(t, 91, err.Value)
		assert.Equal(t,
			"value is invalid: 91 is latitude, min value is -90, max value is 90",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("longitude", -181, -180, 180, cause)

		assert.Equal(t,
			"value is invalid: -181 is longitude, min value is -180, max value is 180 (cause: validation failed)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("products")
	assert.Equal(t, "value is required: products", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("products", errors.New("empty list"))
	assert.Equal(t, "value is required: products (cause: empty list)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("status")
	assert.Equal(t, "conflict: status", err.Error())

	withCause := errs.NewConflictErrorWithCause("status", errors.New("completed is terminal"))
	assert.Equal(t, "conflict: status (cause: completed is terminal)", withCause.Error())
	assert.Equal(t, errs.ErrConflict, withCause.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderNumber", "x"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("currency"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("shops"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewConflictError("status"), errs.ErrConflict)

	t.Run("joined errors keep every sentinel", func(t *testing.T) {
		joined := errors.Join(errs.NewValueIsRequiredError("currency"), errs.NewValueIsInvalidError("price"))

		require.ErrorIs(t, joined, errs.ErrValueIsRequired)
		require.ErrorIs(t, joined, errs.ErrValueIsInvalid)
	})
}
