package services

import (
	"strings"

	"github.com/gradpath/consultancy-api/model"
	"gorm.io/gorm"
)

// SearchService implements the public consultancy search.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns verified consultancies matching the free-text query and
// optional country filter. Country membership is exact and case-sensitive.
// A query empty after trimming returns the filtered set without inspecting
// courses; otherwise a consultancy is included once if any of its courses
// matches by name or tag, case-insensitively. Result order is storage scan
// order.
func (s *SearchService) Search(query, country string) ([]model.ConsultancyView, error) {
	var consultancies []model.Consultancy
	if err := s.db.Preload("Courses").Preload("User").
		Where("is_verified = ?", true).
		Find(&consultancies).Error; err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))

	views := make([]model.ConsultancyView, 0, len(consultancies))
	for i := range consultancies {
		c := &consultancies[i]

		if country != "" && !c.OperatesIn(country) {
			continue
		}

		if q != "" && !offersMatchingCourse(c, q) {
			continue
		}

		views = append(views, model.NewConsultancyView(c, &c.User))
	}

	return views, nil
}

// offersMatchingCourse scans the consultancy's courses, stopping at the first
// course whose name or any tag contains q.
func offersMatchingCourse(c *model.Consultancy, q string) bool {
	for i := range c.Courses {
		course := &c.Courses[i]
		if strings.Contains(strings.ToLower(course.Name), q) {
			return true
		}
		for _, tag := range course.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
	}
	return false
}
