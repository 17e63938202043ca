package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"auth", Auth("Unauthorized"), http.StatusUnauthorized},
		{"conflict", Conflict("Email already exists"), http.StatusConflict},
		{"not found", NotFound("Not found"), http.StatusNotFound},
		{"storage", Storage("upload failed", errors.New("disk full")), http.StatusInternalServerError},
		{"server", Server("boom", nil), http.StatusInternalServerError},
		{"foreign", errors.New("plain"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", Conflict("dup")), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("rename failed")
	err := Storage("Failed to store file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to store file", MessageOf(err))
	assert.Contains(t, err.Error(), "rename failed")
	assert.Equal(t, "", MessageOf(cause))
}

func TestInvalidCarriesFields(t *testing.T) {
	err := Invalid("Validation failed", map[string]string{"email": "Email is required"})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Email is required", FieldsOf(err)["email"])
	assert.Nil(t, FieldsOf(errors.New("plain")))
}
