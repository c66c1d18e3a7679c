package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// knownErrors maps domain errors to a status and a fixed client message.
// Order matters: wrapped chains are matched against the first entry that
// fits, so the more specific gate errors come first.
var knownErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrMissingCredential, http.StatusBadRequest, "token not provided"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "invalid token"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden: insufficient permissions"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "invalid role"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrBadCredential, http.StatusUnauthorized, "incorrect password"},
	{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
	{domain.ErrInvalidProductID, http.StatusBadRequest, "invalid product id"},
	{domain.ErrRevocationDisabled, http.StatusServiceUnavailable, "token revocation is not enabled"},
	{domain.ErrNotRevocable, http.StatusBadRequest, "token cannot be revoked"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and a fixed message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.code, k.msg
		}
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, "internal server error"
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
