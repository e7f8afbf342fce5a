package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
)

// RegisterRequest represents a consultancy registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Address  string `json:"address" validate:"required"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	Token         string `json:"token"`
	ConsultancyID uint   `json:"consultancy_id"`
}

// Register handles consultancy self-service registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	req.Username = validation.SanitizeString(req.Username)
	req.Name = validation.SanitizeString(req.Name)

	token, consultancyID, err := h.accounts.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return response.Conflict(c, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to register account")
	}

	return response.Created(c, RegisterResponse{
		Token:         token,
		ConsultancyID: consultancyID,
	})
}
