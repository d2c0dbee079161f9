package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/pkg/validator"
)

type size string

func (s size) Validate() error {
	switch s {
	case "S", "M", "L":
		return nil
	}
	return errors.New("invalid size")
}

type payload struct {
	Name  string          `validate:"required,alphanumspace"`
	Slug  string          `validate:"required,slug"`
	Raw   string          `validate:"omitempty,money"`
	Size  size            `validate:"omitempty,enum"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	valid := payload{
		Name:  "Cotton Shirt",
		Slug:  "cotton-shirt",
		Raw:   "10.50",
		Size:  "M",
	}

	t.Run("Should accept a valid payload", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	tests := []struct {
		name   string
		mutate func(p *payload)
		tag    string
	}{
		{"missing name", func(p *payload) { p.Name = "" }, "required"},
		{"bad slug", func(p *payload) { p.Slug = "Cotton Shirt" }, "slug"},
		{"double hyphen slug", func(p *payload) { p.Slug = "a--b" }, "slug"},
		{"negative raw", func(p *payload) { p.Raw = "-1" }, "money"},
		{"unparseable raw", func(p *payload) { p.Raw = "ten" }, "money"},
		{"bad enum", func(p *payload) { p.Size = "XXL" }, "enum"},
	}

	for _, tt := range tests {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := v.Validate(p)
			require.Error(t, err)
			assert.True(t, validator.IsValidationError(err))

			var verrs govalidator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.tag, verrs[0].Tag())
			assert.NotEqual(t, "is invalid", validator.ValidationErrorMessage(verrs[0]))
		})
	}
}
