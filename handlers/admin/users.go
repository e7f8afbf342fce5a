package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	authutil "github.com/gradpath/consultancy-api/utils/auth"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// CreateUserRequest represents the request body for admin user creation
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin consultancy unassigned"`
}

// UpdateUserRequest represents a partial admin user update
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin consultancy unassigned"`
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var users []model.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}

	return response.Success(c, views)
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	if req.Role == "" {
		req.Role = model.RoleUnassigned
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user := model.User{
		Username:     validation.SanitizeString(req.Username),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, user.View())
}

// UpdateUser handles PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if req.Username != nil {
		user.Username = validation.SanitizeString(*req.Username)
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := authutil.HashPassword(*req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.PasswordHash = hash
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, user.View())
}

// DeleteUser handles DELETE /admin/users/:id. Cascades to the user's
// consultancy and that consultancy's courses.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.accounts.DeleteAccount(uint(userID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.NoContent(c)
}
