package course

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"github.com/gradpath/consultancy-api/utils/response"
)

// LinkCourseRequest identifies the course to link or unlink
type LinkCourseRequest struct {
	CourseID uint `json:"course_id" validate:"required,min=1"`
}

// LinkCourse handles POST /courses/link. Linking copies the source course's
// name and tags into a new course owned by the caller; the copy stays
// independent of the source afterwards.
func (h *CourseHandler) LinkCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req LinkCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CourseID == 0 {
		return response.BadRequest(c, "course_id is required")
	}

	course, err := h.courses.Link(userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAConsultancy):
			return response.BadRequest(c, "User is not a consultancy")
		case errors.Is(err, services.ErrNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrCourseAlreadyLinked):
			return response.Conflict(c, "Course already linked")
		default:
			return response.InternalServerError(c, "Failed to link course")
		}
	}

	return response.Created(c, model.NewCourseView(course, ""))
}

// UnlinkCourse handles POST /courses/unlink. Only the caller's own copy is
// deleted; the original course is never touched.
func (h *CourseHandler) UnlinkCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req LinkCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CourseID == 0 {
		return response.BadRequest(c, "course_id is required")
	}

	if err := h.courses.Unlink(userID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotAConsultancy):
			return response.BadRequest(c, "User is not a consultancy")
		case errors.Is(err, services.ErrNotFound):
			return response.NotFound(c, "Course not found")
		default:
			return response.InternalServerError(c, "Failed to unlink course")
		}
	}

	return response.NoContent(c)
}
