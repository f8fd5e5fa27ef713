package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/pkg/errs"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFromError maps application errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a JSON response. Internal errors are not
// echoed back to the client.
func respondError(c echo.Context, err error) error {
	code := statusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return c.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
