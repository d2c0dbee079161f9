package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/pkg/zerror"
)

var errProductNotFound = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

func TestZError(t *testing.T) {
	t.Run("Should match sentinel after wrapping", func(t *testing.T) {
		parent := errors.New("no rows")
		err := fmt.Errorf("get product: %w", errProductNotFound.WrapParent(parent))

		assert.ErrorIs(t, err, errProductNotFound)
		assert.ErrorIs(t, err, parent)
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("ORDER_NOT_FOUND", "order not found")
		assert.NotErrorIs(t, errProductNotFound, other)
	})

	t.Run("Should expose fields via errors.As", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", errProductNotFound.WithMsg("product %d not found", 7))

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", zErr.Code())
		assert.Equal(t, "product 7 not found", zErr.Msg())
	})

	t.Run("Should format error string", func(t *testing.T) {
		assert.Equal(t, "Code=PRODUCT_NOT_FOUND, Msg=product not found", errProductNotFound.Error())
		assert.Equal(t,
			"Code=PRODUCT_NOT_FOUND, Msg=product not found, Parent=(boom)",
			errProductNotFound.WrapParent(errors.New("boom")).Error(),
		)
	})

	t.Run("Should ignore nil parent", func(t *testing.T) {
		assert.Nil(t, errProductNotFound.WrapParent(nil).Parent())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", zerror.StatusNotFound.String())
	assert.Equal(t, "UNKNOWN", zerror.Status(200).String())
}
