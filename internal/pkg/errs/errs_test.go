package errs_test

import (
	"errors"
	"testing"

	"bondi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("aggregate", "order-1")

		assert.Equal(t, "aggregate", err.ParamName)
		assert.Equal(t, "order-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("no rows")
		err := errs.NewObjectNotFoundErrorWithCause("aggregate", "order-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: aggregate, ID is: order-1 (cause: no rows)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("aggregate", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("aggregate", "a\nb")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("order", "order-1")

	assert.Equal(t, "object already exists: order order-1", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("volume")

		assert.Equal(t, "volume", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: volume", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("-1 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("volume", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: volume (cause: -1 is not greater than 0)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("aggregate id")

		assert.Equal(t, "aggregate id", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: aggregate id", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("root is nil")
		err := errs.NewValueIsRequiredErrorWithCause("aggregate root", cause)

		assert.Equal(t, "value is required: aggregate root (cause: root is nil)", err.Error())
	})
}

func TestStorageFailureError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStorageFailureError("store", "order-1")

		assert.Equal(t, "storage failure: store order-1", err.Error())
		require.ErrorIs(t, err, errs.ErrStorageFailure)
	})

	t.Run("with cause matches both sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewStorageFailureErrorWithCause("restore", "order-1", cause)

		assert.Equal(t, "storage failure: restore order-1 (cause: connection refused)", err.Error())
		require.ErrorIs(t, err, errs.ErrStorageFailure)
		require.ErrorIs(t, err, cause)
	})
}

func TestBatchError(t *testing.T) {
	notFound := errs.NewObjectNotFoundError("aggregate", "b")
	failure := errs.NewStorageFailureErrorWithCause("restore", "c", errors.New("timeout"))

	err := errs.NewBatchError("rollback", 3, []errs.AggregateFailure{
		{ID: "b", Cause: notFound},
		{ID: "c", Cause: failure},
	})

	t.Run("matches batch sentinel and every cause", func(t *testing.T) {
		require.ErrorIs(t, err, errs.ErrBatchFailed)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, err, errs.ErrStorageFailure)
	})

	t.Run("reports failed ids in order", func(t *testing.T) {
		assert.Equal(t, []string{"b", "c"}, err.FailedIDs())
	})

	t.Run("message names operation and counts", func(t *testing.T) {
		assert.Contains(t, err.Error(), "rollback failed for 2 of 3 aggregates")
		assert.Contains(t, err.Error(), "b: object not found: b")
	})

	t.Run("errors.As reaches typed causes", func(t *testing.T) {
		var target *errs.StorageFailureError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "c", target.ID)
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "object already exists", errs.ErrObjectAlreadyExists.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "storage failure", errs.ErrStorageFailure.Error())
	assert.Equal(t, "batch failed", errs.ErrBatchFailed.Error())
	require.Error(t, errs.ErrConcurrentUse)
}
