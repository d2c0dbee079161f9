package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("zerror", func(t *testing.T) {
		err := fmt.Errorf("product service get product: %w", apperr.ProductNotFoundErr.WrapParent(errors.New("no rows")))

		res := New(err)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "PRODUCT_NOT_FOUND", res.Code)
		assert.Equal(t, "product not found", res.Message)
		assert.Nil(t, res.Details)
	})

	t.Run("cart empty", func(t *testing.T) {
		res := New(apperr.CartEmptyErr)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "CART_EMPTY", res.Code)
	})

	t.Run("validation errors", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type body struct {
			Message string `json:"message" validate:"required"`
		}
		res := New(v.Validate(body{}))

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", res.Code)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Message", (*res.Details)[0].Field)
		assert.Equal(t, "field is required", (*res.Details)[0].Message)
	})

	t.Run("param error", func(t *testing.T) {
		res := New(&ParamError{Param: "id", Err: errors.New("not a number")})

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, res.Message, `"id"`)
	})

	t.Run("unknown error", func(t *testing.T) {
		assert.Equal(t, InternalServerErr, New(errors.New("boom")))
	})
}
