package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/metrics"
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/gate"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// Context keys set on successful authentication.
const (
	KeyPrincipal = "principal"
	KeyRole      = "role"
	KeySubject   = "subject"
)

// Auth verifies the bearer token and attaches the principal to the request.
// It admits every role. denylist may be nil.
func Auth(verifier ports.TokenVerifier, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return pipeline(gate.Authenticated(verifier, denylist))
}

// Protect verifies the bearer token and then requires one of roles, in that
// order, as a single middleware. denylist may be nil.
func Protect(verifier ports.TokenVerifier, denylist ports.TokenDenylist, roles ...domain.Role) echo.MiddlewareFunc {
	return pipeline(gate.Protect(verifier, denylist, roles...))
}

// pipeline adapts a gate pipeline to echo. Rejections are returned to the
// central error handler untouched.
func pipeline(p gate.Pipeline) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, err := p.Run(req.Context(), gate.Request{
				Authorization: req.Header.Get(echo.HeaderAuthorization),
			})
			metrics.GateDecisionsTotal.WithLabelValues(decision(err)).Inc()
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(ctx))
			if principal, ok := gate.PrincipalFrom(ctx); ok {
				c.Set(KeyPrincipal, principal)
				c.Set(KeyRole, string(principal.Role))
				c.Set(KeySubject, principal.Subject)
			}
			return next(c)
		}
	}
}

func decision(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
