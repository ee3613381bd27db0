package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskdesk-api/internal/application"
	repo "github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/pkg/response"
	"github.com/oksasatya/taskdesk-api/pkg/validation"
)

const validationFailed = "ERROR: Validation failed."

// renderError maps service and store errors to a status coded envelope.
// Anything it does not recognise is handed to the ErrorResponder middleware.
func renderError(c *gin.Context, err error, notFound string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, validationFailed, verr.Fields)
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrInvalidID):
		response.Error[any](c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "ERROR: email already exists.", nil)
	case errors.Is(err, repo.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "ERROR: Email address already in use.", nil)
	case errors.Is(err, application.ErrUserNotExist):
		response.Error[any](c, http.StatusUnauthorized, "ERROR: User doesn't exist.", nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error[any](c, http.StatusUnauthorized, "ERROR: Password incorrect.", nil)
	default:
		_ = c.Error(err)
	}
}

// bindJSON decodes and validates the body into dst. It writes the error
// response itself and reports false when the handler should stop.
func bindJSON(c *gin.Context, dst any, messages map[string]string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if fields := validation.ToFieldErrors(err, messages); fields != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, validationFailed, fields)
		return false
	}
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
	return false
}
