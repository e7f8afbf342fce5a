package search

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/response"
	"gorm.io/gorm"
)

// SearchHandler handles the public consultancy search
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{
		search: services.NewSearchService(db),
	}
}

// Search handles GET /search?query=&country=. Public; only verified
// consultancies are returned.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query", "")
	country := c.Query("country", "")

	views, err := h.search.Search(query, country)
	if err != nil {
		return response.InternalServerError(c, "Failed to search consultancies")
	}

	return response.Success(c, views)
}
