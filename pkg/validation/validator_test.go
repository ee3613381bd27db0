package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Name     string `json:"name" binding:"required,min=3"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,userrole"`
}

func TestToFieldErrors_OrderAndOverrides(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signupPayload{Name: "Al", Password: "1234", Role: "boss"})
	require.Error(t, err)

	fields := ToFieldErrors(err, map[string]string{"role": "Must be either employee or client"})
	require.Len(t, fields, 3)
	assert.Equal(t, FieldError{Field: "name", Message: "name must be at least 3 characters long"}, fields[0])
	assert.Equal(t, FieldError{Field: "password", Message: "password must be at least 5 characters long"}, fields[1])
	assert.Equal(t, FieldError{Field: "role", Message: "Must be either employee or client"}, fields[2])
}

func TestToFieldErrors_Required(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signupPayload{})
	require.Error(t, err)

	fields := ToFieldErrors(err, nil)
	require.Len(t, fields, 3)
	for _, f := range fields {
		assert.Equal(t, f.Field+" is required", f.Message)
	}
}

func TestToFieldErrors_Valid(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signupPayload{Name: "Ann", Password: "secret", Role: "client"})
	assert.NoError(t, err)
	assert.Nil(t, ToFieldErrors(err, nil))
}

func TestToFieldErrors_NotAValidationError(t *testing.T) {
	assert.Nil(t, ToFieldErrors(errors.New("boom"), nil))
}

func TestToDetails(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}
	syntaxErr := json.Unmarshal([]byte(`{"name":`), &target)
	typeErr := json.Unmarshal([]byte(`{"name": 5}`), &target)

	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "empty body"}, ToDetails(io.EOF))
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(syntaxErr))
	assert.Equal(t, map[string]string{"name": "must be of type string"}, ToDetails(typeErr))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
}
