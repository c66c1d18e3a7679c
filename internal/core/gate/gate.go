// Package gate implements request authentication and role authorization as
// an explicit, ordered pipeline of stages. Each stage receives the request
// context and either returns an enriched context or rejects the request.
//
// Protect always orders the stages as
//
//	Authenticate → RejectRevoked (optional) → RequireRoles
//
// so a role decision is never taken on an unverified principal.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// Request is the part of an inbound call the gates inspect.
type Request struct {
	// Authorization is the raw value of the Authorization header.
	Authorization string
}

// Stage is a single gate. It must not mutate anything but the returned context.
type Stage func(ctx context.Context, req Request) (context.Context, error)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal attached by Authenticate.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// BearerToken extracts the token from an Authorization header value. It
// returns ErrMissingCredential when nothing is presented and
// ErrUnauthenticated when the scheme is not bearer.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingCredential
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("%w: unsupported authorization scheme", domain.ErrUnauthenticated)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingCredential
	}
	return token, nil
}

// Authenticate verifies the presented bearer token and attaches the
// principal it carries. It performs no role check.
func Authenticate(verifier ports.TokenVerifier) Stage {
	return func(ctx context.Context, req Request) (context.Context, error) {
		token, err := BearerToken(req.Authorization)
		if err != nil {
			return ctx, err
		}
		p, err := verifier.Verify(token)
		if err != nil {
			return ctx, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
		}
		return WithPrincipal(ctx, p), nil
	}
}

// RejectRevoked fails requests whose token id is on the denylist. Lookup
// failures reject the request rather than letting it through.
func RejectRevoked(denylist ports.TokenDenylist) Stage {
	return func(ctx context.Context, _ Request) (context.Context, error) {
		p, ok := PrincipalFrom(ctx)
		if !ok {
			return ctx, fmt.Errorf("%w: no verified principal", domain.ErrUnauthenticated)
		}
		if p.TokenID == "" {
			return ctx, nil
		}
		revoked, err := denylist.IsRevoked(ctx, p.TokenID)
		if err != nil {
			return ctx, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return ctx, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenRevoked)
		}
		return ctx, nil
	}
}

// RequireRoles allows the request only when the verified principal's role is
// one of roles. It panics when roles is empty or holds an unknown role, since
// that is a routing mistake rather than a request failure.
func RequireRoles(roles ...domain.Role) Stage {
	allowed := NewRoleSet(roles...)

	return func(ctx context.Context, _ Request) (context.Context, error) {
		p, ok := PrincipalFrom(ctx)
		if !ok {
			return ctx, fmt.Errorf("%w: no verified principal", domain.ErrUnauthenticated)
		}
		if !allowed.Contains(p.Role) {
			return ctx, domain.ErrForbidden
		}
		return ctx, nil
	}
}

// RoleSet is an immutable, non-empty set of permitted roles.
type RoleSet struct {
	members map[domain.Role]struct{}
}

// NewRoleSet builds a RoleSet, panicking on an empty or unknown role list.
func NewRoleSet(roles ...domain.Role) RoleSet {
	if len(roles) == 0 {
		panic("gate: role set must not be empty")
	}
	members := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			panic(fmt.Sprintf("gate: unknown role %q", r))
		}
		members[r] = struct{}{}
	}
	return RoleSet{members: members}
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r domain.Role) bool {
	_, ok := s.members[r]
	return ok
}

// Pipeline runs stages in order, threading the context through them and
// stopping at the first rejection.
type Pipeline struct {
	stages []Stage
}

// Authenticated builds a pipeline that verifies the credential but admits
// every role. denylist may be nil.
func Authenticated(verifier ports.TokenVerifier, denylist ports.TokenDenylist) Pipeline {
	stages := []Stage{Authenticate(verifier)}
	if denylist != nil {
		stages = append(stages, RejectRevoked(denylist))
	}
	return Pipeline{stages: stages}
}

// Protect builds a pipeline that verifies the credential and then requires
// one of roles. denylist may be nil.
func Protect(verifier ports.TokenVerifier, denylist ports.TokenDenylist, roles ...domain.Role) Pipeline {
	p := Authenticated(verifier, denylist)
	p.stages = append(p.stages, RequireRoles(roles...))
	return p
}

// Run executes the pipeline. On success the returned context carries the
// verified principal.
func (p Pipeline) Run(ctx context.Context, req Request) (context.Context, error) {
	for _, stage := range p.stages {
		var err error
		if ctx, err = stage(ctx, req); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}
