package course

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course management for consultancy accounts
type CourseHandler struct {
	db        *gorm.DB
	courses   *services.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		courses:   services.NewCourseService(db),
		validator: validation.NewValidator(),
	}
}

// AddCourseRequest represents the request body for creating a course
type AddCourseRequest struct {
	Name string   `json:"name" validate:"required,min=1,max=100"`
	Tags []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// EditCourseRequest represents a partial course update
type EditCourseRequest struct {
	Name *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Tags *[]string `json:"tags" validate:"omitempty,dive,min=1"`
}

// AddCourse handles POST /courses/add
func (h *CourseHandler) AddCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req AddCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	course, err := h.courses.Add(userID, validation.SanitizeString(req.Name), req.Tags)
	if err != nil {
		if errors.Is(err, services.ErrNotAConsultancy) {
			return response.BadRequest(c, "User is not a consultancy")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, model.NewCourseView(course, ""))
}

// EditCourse handles PUT /courses/edit/:id. A course owned by another
// consultancy answers 404, same as a missing one.
func (h *CourseHandler) EditCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req EditCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	course, err := h.courses.Edit(userID, uint(courseID), req.Name, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAConsultancy):
			return response.BadRequest(c, "User is not a consultancy")
		case errors.Is(err, services.ErrNotFound):
			return response.NotFound(c, "Course not found")
		default:
			return response.InternalServerError(c, "Failed to update course")
		}
	}

	return response.Success(c, model.NewCourseView(course, ""))
}

// DeleteCourse handles DELETE /courses/delete/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	if err := h.courses.Delete(userID, uint(courseID)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotAConsultancy):
			return response.BadRequest(c, "User is not a consultancy")
		case errors.Is(err, services.ErrNotFound):
			return response.NotFound(c, "Course not found")
		default:
			return response.InternalServerError(c, "Failed to delete course")
		}
	}

	return response.NoContent(c)
}
