package http

import (
	"errors"
	"net/http"

	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrCommitConflict):
		return http.StatusConflict
	case errors.Is(err, ports.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrNoCapacity),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, commands.ErrInvalidInput),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. The cause of a 5xx is logged, not returned.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"path", c.Path(),
			"status", code,
			"error", err,
		)
		message = "Internal server error"
		if code == http.StatusServiceUnavailable {
			message = "A backing service is unavailable, try again later"
		}
	}
	return c.JSON(code, Error{Code: code, Message: message})
}
