package validation

import (
	"errors"
	"testing"

	"fieldside/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructReportsFirstFailure(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,max=5"`
	}

	err := Struct(&input{Email: "not-an-email", Name: "ok"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)

	assert.NoError(t, Struct(&input{Email: "a@b.io", Name: "ok"}))
}

func TestShebaTag(t *testing.T) {
	type input struct {
		Sheba string `validate:"sheba"`
	}

	assert.NoError(t, Struct(&input{Sheba: "IR062960000000100324200001"}))
	assert.Error(t, Struct(&input{Sheba: "IR12345"}))
	assert.Error(t, Struct(&input{Sheba: "GB29NWBK60161331926819"}))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("limit", 10, "gte=1"))
	assert.Error(t, Var("limit", 0, "gte=1"))
}
