package profile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"github.com/gradpath/consultancy-api/utils/response"
)

// MaxLogoSize caps logo uploads at 5 MB
const MaxLogoSize = 5 * 1024 * 1024

var allowedLogoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// UploadLogo handles POST /profile/logo. The image is stored in the Spaces
// bucket and the resulting URL saved on the consultancy profile.
func (h *ProfileHandler) UploadLogo(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	if h.spaces == nil {
		return response.ServiceUnavailable(c, "Logo storage is not configured")
	}

	consultancy, err := h.accounts.Consultancy(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotAConsultancy) {
			return response.BadRequest(c, "User is not a consultancy")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return response.BadRequest(c, "Missing logo file")
	}

	if file.Size > MaxLogoSize {
		return response.BadRequest(c, "Logo must be at most 5 MB")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedLogoTypes[contentType] {
		return response.BadRequest(c, "Logo must be a PNG, JPEG or WebP image")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read logo file")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("logos/%d-%s%s", consultancy.ID, uuid.NewString(), ext)

	url, err := h.spaces.UploadFile(c.Context(), key, src, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store logo")
	}

	consultancy.ProfileImage = url
	if err := h.db.Save(consultancy).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, model.NewConsultancyView(consultancy, user))
}
