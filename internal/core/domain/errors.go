package domain

import "errors"

// Registration and login.
var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrBadCredential = errors.New("incorrect password")
)

// Token verification. Verifiers return one of these; the auth gate wraps
// them in ErrUnauthenticated.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
)

// Gate decisions.
var (
	ErrMissingCredential = errors.New("token not provided")
	ErrUnauthenticated   = errors.New("invalid token")
	ErrForbidden         = errors.New("access forbidden: insufficient permissions")
)

// Products.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
)

// ErrRevocationDisabled is returned when a token revocation is requested but
// no denylist is configured.
var ErrRevocationDisabled = errors.New("token revocation is not enabled")

// ErrNotRevocable is returned for a valid token that carries no id, such as
// one issued before ids were added.
var ErrNotRevocable = errors.New("token cannot be revoked")
