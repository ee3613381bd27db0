package application

import (
	"errors"
	"strings"

	"github.com/oksasatya/taskdesk-api/pkg/validation"
)

var (
	ErrUserNotExist  = errors.New("user doesn't exist")
	ErrWrongPassword = errors.New("password incorrect")
	ErrEmailTaken    = errors.New("email already exists")
)

// ValidationError carries field level failures detected by a service.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: []validation.FieldError{{Field: field, Message: message}}}
}
