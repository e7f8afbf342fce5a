package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/services/spaces"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// ProfileHandler handles a consultancy's own profile
type ProfileHandler struct {
	db        *gorm.DB
	accounts  *services.AccountService
	validator *validation.Validator
	spaces    *spaces.Client
}

// NewProfileHandler creates a new profile handler. spacesClient may be nil
// when logo storage is not configured.
func NewProfileHandler(db *gorm.DB, spacesClient *spaces.Client) *ProfileHandler {
	return &ProfileHandler{
		db:        db,
		accounts:  services.NewAccountService(db),
		validator: validation.NewValidator(),
		spaces:    spacesClient,
	}
}

// AccountView is the reduced profile shown to admins without a consultancy
type AccountView struct {
	IsAdmin       bool   `json:"is_admin"`
	IsConsultancy bool   `json:"is_consultancy"`
	Username      string `json:"username"`
	Email         string `json:"email"`
}

// UpdateProfileRequest represents a partial profile update; only supplied
// fields are changed
type UpdateProfileRequest struct {
	Name              *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Address           *string   `json:"address" validate:"omitempty"`
	Description       *string   `json:"description" validate:"omitempty,max=2000"`
	PhoneNo           *string   `json:"phone_no" validate:"omitempty,max=20"`
	Website           *string   `json:"website" validate:"omitempty,url"`
	CountriesOperated *[]string `json:"countries_operated" validate:"omitempty,dive,min=1"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	consultancy, err := h.accounts.ConsultancyWithCourses(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotAConsultancy) {
			if user.IsAdmin() {
				return response.Success(c, AccountView{
					IsAdmin:  true,
					Username: user.Username,
					Email:    user.Email,
				})
			}
			return response.BadRequest(c, "User is not a consultancy")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, model.NewConsultancyView(consultancy, user))
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	consultancy, err := h.accounts.ConsultancyWithCourses(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotAConsultancy) {
			return response.BadRequest(c, "User is not a consultancy")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	if req.Name != nil {
		consultancy.Name = validation.SanitizeString(*req.Name)
	}
	if req.Address != nil {
		consultancy.Address = *req.Address
	}
	if req.Description != nil {
		consultancy.Description = *req.Description
	}
	if req.PhoneNo != nil {
		consultancy.PhoneNo = *req.PhoneNo
	}
	if req.Website != nil {
		consultancy.Website = *req.Website
	}
	if req.CountriesOperated != nil {
		consultancy.CountriesOperated = *req.CountriesOperated
	}

	if err := h.db.Save(consultancy).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, model.NewConsultancyView(consultancy, user))
}

// DeleteAccount handles DELETE /profile. Deletes the caller's user record,
// cascading to the consultancy and its courses. Irreversible.
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	if err := h.accounts.DeleteAccount(user.ID); err != nil {
		return response.InternalServerError(c, "Failed to delete account")
	}

	return response.NoContent(c)
}
