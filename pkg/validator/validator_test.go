package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

type addParams struct {
	ProductID string `validate:"required"`
	Quantity  int64  `validate:"gte=1"`
	Note      string `validate:"omitempty,notblank"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept valid params", func(t *testing.T) {
		assert.NoError(t, v.Validate(addParams{ProductID: "p1", Quantity: 1}))
	})

	t.Run("Should report each failing field", func(t *testing.T) {
		err := v.Validate(addParams{ProductID: "", Quantity: 0, Note: "  "})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		details := validator.FieldErrors(err)
		assert.Equal(t, []validator.FieldError{
			{Field: "ProductID", Message: "field is required"},
			{Field: "Quantity", Message: "must be greater than or equal to 1"},
			{Field: "Note", Message: "must not be blank"},
		}, details)
	})

	t.Run("Should return nil details for other errors", func(t *testing.T) {
		assert.Nil(t, validator.FieldErrors(assert.AnError))
		assert.False(t, validator.IsValidationError(assert.AnError))
	})
}
