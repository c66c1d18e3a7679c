package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	repo     ports.AuthRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	denylist ports.TokenDenylist
	audit    ports.AuditSink
	log      zerolog.Logger
	now      func() time.Time
}

// AuthOption configures optional collaborators of AuthService.
type AuthOption func(*AuthService)

// WithDenylist enables Logout.
func WithDenylist(d ports.TokenDenylist) AuthOption {
	return func(s *AuthService) { s.denylist = d }
}

// WithAudit records every register/login/logout outcome to sink.
func WithAudit(sink ports.AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = sink }
}

func NewAuthService(repo ports.AuthRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user. The existence check and the insert are not
// atomic; the store's unique index on email resolves concurrent attempts.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		s.record(domain.EventRegister, email, "", "invalid_role")
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.record(domain.EventRegister, email, "", "already_exists")
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.record(domain.EventRegister, email, "", "already_exists")
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.record(domain.EventRegister, email, created.ID, "success")
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks the password of the user with email and issues a credential
// embedding the user's id and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.EventLogin, email, "", "not_found")
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(domain.EventLogin, email, user.ID, "bad_credential")
		return nil, domain.ErrBadCredential
	}

	// A stored role outside the fixed set is corrupt data, not a caller error.
	if !user.Role.Valid() {
		return nil, fmt.Errorf("login: stored user %s has invalid role %q", user.ID, user.Role)
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.record(domain.EventLogin, email, user.ID, "success")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// Logout revokes the credential described by principal until it would have
// expired on its own.
func (s *AuthService) Logout(ctx context.Context, principal domain.Principal) error {
	if s.denylist == nil {
		return domain.ErrRevocationDisabled
	}
	if principal.TokenID == "" {
		return domain.ErrNotRevocable
	}
	if err := s.denylist.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.record(domain.EventLogout, "", principal.Subject, "success")
	return nil
}

func (s *AuthService) record(typ domain.AuthEventType, email, userID, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Type:    typ,
		Email:   email,
		UserID:  userID,
		Outcome: outcome,
		At:      s.now().UTC(),
	})
}
