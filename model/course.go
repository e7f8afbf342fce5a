package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a named offering with free-text tags, owned by exactly one
// consultancy. Linking a course copies name and tags by value; copies carry no
// reference back to their source.
type Course struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`
	ConsultancyID uint                        `gorm:"not null;index" json:"consultancy"`
	Name          string                      `gorm:"not null" json:"name"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`

	// Relationships
	Consultancy *Consultancy `gorm:"foreignKey:ConsultancyID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseView is the wire representation of a course.
type CourseView struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Tags            []string `json:"tags"`
	Consultancy     uint     `json:"consultancy"`
	ConsultancyName string   `json:"consultancy_name,omitempty"`
}

// NewCourseView converts a Course to its wire representation.
func NewCourseView(course *Course, consultancyName string) CourseView {
	tags := course.Tags
	if tags == nil {
		tags = []string{}
	}
	return CourseView{
		ID:              course.ID,
		Name:            course.Name,
		Tags:            tags,
		Consultancy:     course.ConsultancyID,
		ConsultancyName: consultancyName,
	}
}
