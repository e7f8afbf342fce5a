package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	authutil "github.com/gradpath/consultancy-api/utils/auth"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// CreateConsultancyRequest represents admin consultancy creation. A backing
// user is provisioned in the same transaction. The username defaults to the
// email local-part; the password has no default and must be supplied.
type CreateConsultancyRequest struct {
	Name              string   `json:"name" validate:"required,min=2,max=100"`
	Address           string   `json:"address" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Username          string   `json:"username" validate:"omitempty,min=3,max=150"`
	Password          string   `json:"password" validate:"required,min=8"`
	Description       string   `json:"description" validate:"omitempty,max=2000"`
	PhoneNo           string   `json:"phone_no" validate:"omitempty,max=20"`
	Website           string   `json:"website" validate:"omitempty,url"`
	CountriesOperated []string `json:"countries_operated" validate:"omitempty,dive,min=1"`
}

// UpdateConsultancyRequest represents a partial admin consultancy update
type UpdateConsultancyRequest struct {
	Name              *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Address           *string   `json:"address" validate:"omitempty"`
	Description       *string   `json:"description" validate:"omitempty,max=2000"`
	PhoneNo           *string   `json:"phone_no" validate:"omitempty,max=20"`
	Website           *string   `json:"website" validate:"omitempty,url"`
	CountriesOperated *[]string `json:"countries_operated" validate:"omitempty,dive,min=1"`
	IsVerified        *bool     `json:"is_verified"`
}

// ListConsultancies handles GET /admin/consultancies
func (h *AdminHandler) ListConsultancies(c *fiber.Ctx) error {
	var consultancies []model.Consultancy
	if err := h.db.Preload("Courses").Preload("User").Order("id").Find(&consultancies).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch consultancies")
	}

	views := make([]model.ConsultancyView, 0, len(consultancies))
	for i := range consultancies {
		views = append(views, model.NewConsultancyView(&consultancies[i], &consultancies[i].User))
	}

	return response.Success(c, views)
}

// CreateConsultancy handles POST /admin/consultancies. Provisions the backing
// user and the consultancy atomically.
func (h *AdminHandler) CreateConsultancy(c *fiber.Ctx) error {
	var req CreateConsultancyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	username := validation.SanitizeString(req.Username)
	if username == "" {
		username = strings.SplitN(req.Email, "@", 2)[0]
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var consultancy model.Consultancy
	var user model.User
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user = model.User{
			Username:     username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.RoleConsultancy,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		consultancy = model.Consultancy{
			UserID:            user.ID,
			Name:              validation.SanitizeString(req.Name),
			Address:           req.Address,
			Description:       req.Description,
			PhoneNo:           req.PhoneNo,
			Website:           req.Website,
			CountriesOperated: req.CountriesOperated,
		}
		return tx.Create(&consultancy).Error
	})
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, model.NewConsultancyView(&consultancy, &user))
}

// UpdateConsultancy handles PUT /admin/consultancies/:id
func (h *AdminHandler) UpdateConsultancy(c *fiber.Ctx) error {
	consultancyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid consultancy ID")
	}

	var req UpdateConsultancyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var consultancy model.Consultancy
	if err := h.db.Preload("Courses").Preload("User").First(&consultancy, consultancyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Consultancy not found")
		}
		return response.InternalServerError(c, "Failed to fetch consultancy")
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
	if req.IsVerified != nil {
		consultancy.IsVerified = *req.IsVerified
	}

	if err := h.db.Save(&consultancy).Error; err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, model.NewConsultancyView(&consultancy, &consultancy.User))
}

// DeleteConsultancy handles DELETE /admin/consultancies/:id. Deletion goes
// through the backing user so the cascade covers token, consultancy and
// courses.
func (h *AdminHandler) DeleteConsultancy(c *fiber.Ctx) error {
	consultancyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid consultancy ID")
	}

	var consultancy model.Consultancy
	if err := h.db.First(&consultancy, consultancyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Consultancy not found")
		}
		return response.InternalServerError(c, "Failed to fetch consultancy")
	}

	if err := h.accounts.DeleteAccount(consultancy.UserID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "Consultancy not found")
		}
		return response.InternalServerError(c, "Failed to delete consultancy")
	}

	return response.NoContent(c)
}

// VerifyConsultancy handles PUT /admin/consultancies/verify/:id. Sets the
// verified flag unconditionally; calling it again is a no-op. There is no
// un-verify operation.
func (h *AdminHandler) VerifyConsultancy(c *fiber.Ctx) error {
	consultancyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid consultancy ID")
	}

	var consultancy model.Consultancy
	if err := h.db.First(&consultancy, consultancyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Consultancy not found")
		}
		return response.InternalServerError(c, "Failed to fetch consultancy")
	}

	consultancy.IsVerified = true
	if err := h.db.Save(&consultancy).Error; err != nil {
		return response.InternalServerError(c, "Failed to verify consultancy")
	}

	return response.SuccessWithMessage(c, "Consultancy verified", nil)
}
