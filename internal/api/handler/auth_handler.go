package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// AuthHandler exposes signup, login and profile endpoints for both
// identity kinds.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type adminRegisteredResponse struct {
	Message string `json:"message"`
	AdminID string `json:"adminId"`
}

type profileResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Signup registers a regular user and returns a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Register(c.Request().Context(), domain.KindUser, req.Email, req.FullName, req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.KindUser)).Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Message: "User created successfully", Token: token})
}

// Login authenticates a regular user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, domain.KindUser, "Login successful")
}

// AdminLogin authenticates an admin and returns a bearer token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /admin-login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.KindAdmin, "Admin login successful")
}

func (h *AuthHandler) login(c echo.Context, kind domain.PrincipalKind, message string) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), kind, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(kind), loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(kind), "success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Message: message, Token: token})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "failure"
	default:
		return "error"
	}
}

// AdminRegister registers an admin account.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin registration details"
// @Success      201   {object}  adminRegisteredResponse
// @Failure      400   {object}  map[string]string
// @Router       /admin-register [post]
func (h *AuthHandler) AdminRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, admin, err := h.authService.Register(c.Request().Context(), domain.KindAdmin, req.Email, "", req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.KindAdmin)).Inc()
	return c.JSON(http.StatusCreated, adminRegisteredResponse{Message: "Admin registered successfully", AdminID: admin.ID})
}

// Profile returns the caller's own identity record, never the hash.
//
// @Summary      Fetch own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	id, kind, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	principal, err := h.authService.Profile(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{FullName: principal.FullName, Email: principal.Email})
}

// ListUsers returns every registered user without password hashes.
//
// @Summary      List all users
// @Tags         auth
// @Produce      json
// @Success      200  {array}   domain.Principal
// @Failure      404  {object}  map[string]string
// @Router       /users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
