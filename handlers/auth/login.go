package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/response"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles login for both admin and consultancy accounts. The returned
// token is persistent: logging in again yields the same key.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	ip := c.IP()

	token, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			if h.bruteForceProtection != nil {
				h.bruteForceProtection.RecordFailedAttempt(c, ip)
			}
			return response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, services.ErrInvalidAccountType):
			return response.Forbidden(c, "Invalid account type")
		default:
			return response.InternalServerError(c, "Failed to log in")
		}
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	return response.Success(c, LoginResponse{Token: token})
}
