package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/metrics"
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Role is deliberately not validated here: an unknown role must surface as
// the service's invalid-role error.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Token  string       `json:"jwtToken"`
	UserID string       `json:"userId"`
	User   *domain.User `json:"user"`
}

type meResponse struct {
	UserID    string     `json:"userId"`
	Role      string     `json:"role"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		observe(string(domain.EventRegister), errInvalidPayload)
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	observe(string(domain.EventRegister), err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{Message: "user created successfully", User: user})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		observe(string(domain.EventLogin), errInvalidPayload)
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	observe(string(domain.EventLogin), err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, UserID: res.User.ID, User: res.User})
}

// Me returns the identity carried by the presented token.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	resp := meResponse{UserID: p.Subject, Role: string(p.Role)}
	if !p.IssuedAt.IsZero() {
		resp.IssuedAt = &p.IssuedAt
	}
	if p.Expires() {
		resp.ExpiresAt = &p.ExpiresAt
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	err = h.authService.Logout(c.Request().Context(), p)
	observe(string(domain.EventLogout), err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

var errInvalidPayload = errors.New("invalid payload")

// observe counts a credential operation by outcome.
func observe(operation string, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrUserExists):
		return "already_exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrBadCredential):
		return "bad_credential"
	case errors.Is(err, domain.ErrRevocationDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrNotRevocable):
		return "not_revocable"
	default:
		return "error"
	}
}
