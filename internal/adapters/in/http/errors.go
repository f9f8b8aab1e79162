package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// NewErrorHandler renders handler errors as ErrorResponse with a status code
// derived from the error kind. Unclassified errors are logged and hidden.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := classify(err)
		if resp.Code == http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resp.Code)
		} else {
			writeErr = c.JSON(resp.Code, resp)
		}
		if writeErr != nil {
			logger.Warn("write error response", "error", writeErr)
		}
	}
}

func classify(err error) ErrorResponse {
	var (
		notFound   *errs.ObjectNotFoundError
		httpErr    *echo.HTTPError
		requestErr *openapi3filter.RequestError
	)

	switch {
	case errors.As(err, &notFound):
		return ErrorResponse{
			Code:    http.StatusNotFound,
			Message: notFound.ParamName + " not found",
			Details: []string{notFound.Error()},
		}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Details: flatten(err),
		}
	case errors.As(err, &requestErr):
		return ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "request does not match the API contract",
			Details: []string{requestErr.Error()},
		}
	case errors.Is(err, errs.ErrConflict):
		return ErrorResponse{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrUnauthenticated):
		return ErrorResponse{Code: http.StatusUnauthorized, Message: ErrUnauthenticated.Error()}
	case errors.Is(err, ErrForbidden):
		return ErrorResponse{Code: http.StatusForbidden, Message: err.Error()}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		return ErrorResponse{Code: httpErr.Code, Message: msg}
	default:
		return ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

// flatten lists the leaves of a joined or wrapped error tree.
func flatten(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
