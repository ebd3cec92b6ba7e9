package httpserver

import (
	"fmt"
	"net/http"

	"moviecatalog/errs"
	"moviecatalog/pkg/sentry"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// errorResponse maps err to the status code and the plain text body sent to the client.
func errorResponse(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	// Map application error codes to HTTP status codes
	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	case errs.EUNAVAILABLE:
		return http.StatusServiceUnavailable, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	code, message := errorResponse(err)
	if code >= http.StatusInternalServerError {
		s.Logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", code,
			"error", err,
		)
		sentry.WithContext(c).Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, message)
	}
	if err != nil {
		s.Logger.Error("cannot write error response", "error", err)
	}
}
