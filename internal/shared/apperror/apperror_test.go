package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("Article 3 not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthorized:    http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind), kind.String())
	}
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.Message)
}

func TestValidation_Message(t *testing.T) {
	assert.Equal(t, "name: cannot be blank", Validation("name: cannot be blank").Message)

	multi := Validation("a", "b")
	assert.Equal(t, "Validation failed", multi.Message)
	assert.Equal(t, []string{"a", "b"}, multi.Details)
}

func TestFromValidation(t *testing.T) {
	type payload struct {
		Name  string
		Email string
	}
	p := payload{}
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Email, validation.Required),
	)

	converted := FromValidation(err)

	var appErr *Error
	assert.True(t, errors.As(converted, &appErr))
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, []string{"Email: cannot be blank", "Name: cannot be blank"}, appErr.Details)
	assert.Nil(t, FromValidation(nil))
}
