package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidRequest, http.StatusBadRequest},
		{CodeResourceNotFound, http.StatusNotFound},
		{CodePersistence, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{"Unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, NewStandardError(tt.code, "msg", "").HTTPStatus())
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Product name is required", "name")

	assert.Equal(t, "Product name is required", err.Error())
	assert.Equal(t, "Field: name", err.Details)
	assert.True(t, IsValidation(err))
	assert.False(t, IsPersistence(err))
}

func TestNewPersistenceError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("no rows affected")
	err := NewPersistenceError("Updating supplier failed, no rows affected.", cause)

	assert.True(t, IsPersistence(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no rows affected", err.Details)
}

func TestIsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("create product: %w", NewValidationError("Category is required", "category"))

	assert.True(t, IsValidation(err))
	stdErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "Category is required", stdErr.Message)
}

func TestIsNotFound(t *testing.T) {
	err := NewNotFound("Product", 7)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Product not found with ID: 7", err.Message)
	assert.False(t, IsNotFound(stderrors.New("plain")))
}
