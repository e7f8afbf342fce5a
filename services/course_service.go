package services

import (
	"errors"

	"github.com/gradpath/consultancy-api/model"
	"gorm.io/gorm"
)

// CourseService owns course CRUD scoped to the caller's consultancy, plus the
// link/unlink copy semantics.
type CourseService struct {
	db       *gorm.DB
	accounts *AccountService
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{
		db:       db,
		accounts: NewAccountService(db),
	}
}

// ownedCourse looks a course up by id within the given consultancy. A course
// owned by someone else resolves to ErrNotFound, same as a missing one.
func (s *CourseService) ownedCourse(tx *gorm.DB, consultancyID, courseID uint) (*model.Course, error) {
	var course model.Course
	err := tx.Where("id = ? AND consultancy_id = ?", courseID, consultancyID).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Add creates a course under the caller's consultancy.
func (s *CourseService) Add(userID uint, name string, tags []string) (*model.Course, error) {
	consultancy, err := s.accounts.Consultancy(userID)
	if err != nil {
		return nil, err
	}

	course := model.Course{
		ConsultancyID: consultancy.ID,
		Name:          name,
		Tags:          tags,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}

	return &course, nil
}

// Edit partially updates a course owned by the caller's consultancy.
func (s *CourseService) Edit(userID, courseID uint, name *string, tags *[]string) (*model.Course, error) {
	consultancy, err := s.accounts.Consultancy(userID)
	if err != nil {
		return nil, err
	}

	course, err := s.ownedCourse(s.db, consultancy.ID, courseID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		course.Name = *name
	}
	if tags != nil {
		course.Tags = *tags
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, err
	}

	return course, nil
}

// Delete removes a course owned by the caller's consultancy.
func (s *CourseService) Delete(userID, courseID uint) error {
	consultancy, err := s.accounts.Consultancy(userID)
	if err != nil {
		return err
	}

	course, err := s.ownedCourse(s.db, consultancy.ID, courseID)
	if err != nil {
		return err
	}

	return s.db.Delete(course).Error
}

// Link copies another consultancy's course under the caller's consultancy.
// Name and tags are copied by value at this instant; later edits to the
// source do not propagate. The read and the write share one transaction so a
// concurrent edit of the source cannot be half-observed.
func (s *CourseService) Link(userID, courseID uint) (*model.Course, error) {
	consultancy, err := s.accounts.Consultancy(userID)
	if err != nil {
		return nil, err
	}

	var copied model.Course
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var source model.Course
		if err := tx.First(&source, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if source.ConsultancyID == consultancy.ID {
			return ErrCourseAlreadyLinked
		}

		copied = model.Course{
			ConsultancyID: consultancy.ID,
			Name:          source.Name,
			Tags:          append([]string(nil), source.Tags...),
		}
		return tx.Create(&copied).Error
	})
	if err != nil {
		return nil, err
	}

	return &copied, nil
}

// Unlink deletes the caller's own copy of a course. It never touches the
// original the copy was linked from.
func (s *CourseService) Unlink(userID, courseID uint) error {
	return s.Delete(userID, courseID)
}
