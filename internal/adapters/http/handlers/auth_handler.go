package handlers

import (
	"errors"
	"strings"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/config"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/jwt"
	"staynest-hostels/internal/pkg/password"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints for all three surfaces
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents student registration request body
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles student registration
// @Summary Register new student
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.Validate(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Password:     req.Password,
		ReferralCode: strings.TrimSpace(req.ReferralCode),
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrReferrerNotFound):
			return response.BadRequest(c, "Referral code not found")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	h.setAuthCookies(c, result.User.Role, result.AccessToken, result.RefreshToken)

	return response.Created(c, "Registered successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Login authenticates a user on one surface. The surface is fixed by
// the route, so a student credential cannot open an admin session.
func (h *AuthHandler) Login(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}

		if req.Email == "" {
			return response.BadRequest(c, "Email is required")
		}
		if req.Password == "" {
			return response.BadRequest(c, "Password is required")
		}

		input := &services.LoginInput{
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			Password: req.Password,
		}

		result, err := h.authService.Login(c.Context(), input, role)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrWrongSurface):
				return response.Unauthorized(c, "Invalid email or password")
			case errors.Is(err, services.ErrUserInactive):
				return response.Forbidden(c, "Account is inactive")
			default:
				return response.InternalServerError(c, "Failed to login")
			}
		}

		h.setAuthCookies(c, role, result.AccessToken, result.RefreshToken)

		return response.Success(c, "Login successful", fiber.Map{
			"access_token": result.AccessToken,
			"user":         result.User,
		})
	}
}

// Refresh rotates the refresh token and re-issues the surface cookie
// @Summary Refresh tokens
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	result, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.Unauthorized(c, "Invalid refresh token")
		}
	}

	h.setAuthCookies(c, result.User.Role, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Token refreshed", fiber.Map{
		"access_token": result.AccessToken,
	})
}

// Logout revokes the refresh token and clears cookies
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if err := h.authService.Logout(c.Context(), refreshToken); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	for _, name := range []string{"token", "vendor-token", "admin-token", "refresh_token"} {
		h.clearCookie(c, name)
	}

	return response.Success(c, "Logged out", nil)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	user, err := h.authService.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "", user)
}

// CreateStaffRequest represents the admin create-staff body
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateStaff creates a vendor or admin account (admin only)
func (h *AuthHandler) CreateStaff(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Name == "" {
		return response.BadRequest(c, "Name and email are required")
	}
	if !password.Validate(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}
	if req.Role != models.RoleVendor && req.Role != models.RoleAdmin {
		return response.BadRequest(c, "Role must be VENDOR or ADMIN")
	}

	user, err := h.authService.CreateStaff(c.Context(), &services.CreateStaffInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			return response.Conflict(c, "Email already registered")
		}
		return response.InternalServerError(c, "Failed to create account")
	}

	return response.Created(c, "Account created", user)
}

// setAuthCookies sets the surface access-token cookie and the shared
// refresh-token cookie
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, role, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.CookieForRole(role),
		Value:    accessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  jwt.GetExpiryTime(h.cfg.JWT.RefreshTokenDays),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}
