package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleError_EsDelTipo(t *testing.T) {
	err := Violation(ErrCapacityExceeded, "el estante A no tiene espacio")
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.False(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, []string{"el estante A no tiene espacio"}, Messages(err))

	wrapped := fmt.Errorf("traslado: %w", err)
	assert.True(t, errors.Is(wrapped, ErrCapacityExceeded))
	assert.Equal(t, []string{"el estante A no tiene espacio"}, Messages(wrapped))
}

func TestInvalid_VariosMensajes(t *testing.T) {
	err := Invalid("el nombre es obligatorio", "el apellido es obligatorio")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, Messages(err), 2)
	assert.Contains(t, err.Error(), "el nombre es obligatorio; el apellido es obligatorio")
}

func TestMessages_ErrorPlano(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{ErrNotFound.Error()}, Messages(ErrNotFound))
}
