package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/response"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// CreateCourseRequest represents admin course creation. Every course needs an
// owning consultancy; there is no admin path to an orphaned course.
type CreateCourseRequest struct {
	ConsultancyID uint     `json:"consultancy" validate:"required,min=1"`
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	Tags          []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// UpdateCourseRequest represents a partial admin course update
type UpdateCourseRequest struct {
	ConsultancyID *uint     `json:"consultancy" validate:"omitempty,min=1"`
	Name          *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Tags          *[]string `json:"tags" validate:"omitempty,dive,min=1"`
}

// ListCourses handles GET /admin/courses
func (h *AdminHandler) ListCourses(c *fiber.Ctx) error {
	var courses []model.Course
	if err := h.db.Preload("Consultancy").Order("id").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		name := ""
		if courses[i].Consultancy != nil {
			name = courses[i].Consultancy.Name
		}
		views = append(views, model.NewCourseView(&courses[i], name))
	}

	return response.Success(c, views)
}

// CreateCourse handles POST /admin/courses
func (h *AdminHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var consultancy model.Consultancy
	if err := h.db.First(&consultancy, req.ConsultancyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Consultancy not found")
		}
		return response.InternalServerError(c, "Failed to verify consultancy")
	}

	course := model.Course{
		ConsultancyID: req.ConsultancyID,
		Name:          validation.SanitizeString(req.Name),
		Tags:          req.Tags,
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, model.NewCourseView(&course, consultancy.Name))
}

// UpdateCourse handles PUT /admin/courses/:id
func (h *AdminHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if req.ConsultancyID != nil {
		var consultancy model.Consultancy
		if err := h.db.First(&consultancy, *req.ConsultancyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.BadRequest(c, "Consultancy not found")
			}
			return response.InternalServerError(c, "Failed to verify consultancy")
		}
		course.ConsultancyID = *req.ConsultancyID
	}
	if req.Name != nil {
		course.Name = validation.SanitizeString(*req.Name)
	}
	if req.Tags != nil {
		course.Tags = *req.Tags
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, model.NewCourseView(&course, ""))
}

// DeleteCourse handles DELETE /admin/courses/:id
func (h *AdminHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.NoContent(c)
}
