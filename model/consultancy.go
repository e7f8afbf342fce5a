package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Consultancy represents a tenant organization profile. Each consultancy is
// backed by exactly one user; its lifetime is tied to that user.
type Consultancy struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	DeletedAt         gorm.DeletedAt              `gorm:"index" json:"-"`
	UserID            uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	Name              string                      `gorm:"not null" json:"name"`
	Address           string                      `gorm:"type:text" json:"address"`
	Description       string                      `gorm:"type:text" json:"description"`
	ProfileImage      string                      `json:"profile_image"`
	PhoneNo           string                      `gorm:"type:varchar(20)" json:"phone_no"`
	Website           string                      `json:"website"`
	CountriesOperated datatypes.JSONSlice[string] `json:"countries_operated"`
	IsVerified        bool                        `gorm:"default:false" json:"is_verified"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Courses []Course `gorm:"foreignKey:ConsultancyID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

// OperatesIn reports whether country appears in the consultancy's operated
// countries. Matching is exact and case-sensitive.
func (c *Consultancy) OperatesIn(country string) bool {
	for _, op := range c.CountriesOperated {
		if op == country {
			return true
		}
	}
	return false
}

// ConsultancyView is the wire representation of a consultancy, merging the
// profile fields with the email and role flags of the backing user.
type ConsultancyView struct {
	ID                uint         `json:"id"`
	Name              string       `json:"name"`
	Address           string       `json:"address"`
	Description       string       `json:"description"`
	ProfileImage      string       `json:"profile_image"`
	PhoneNo           string       `json:"phone_no"`
	Email             string       `json:"email"`
	Website           string       `json:"website"`
	CountriesOperated []string     `json:"countries_operated"`
	IsVerified        bool         `json:"is_verified"`
	Courses           []CourseView `json:"courses"`
	IsAdmin           bool         `json:"is_admin"`
	IsConsultancy     bool         `json:"is_consultancy"`
}

// NewConsultancyView builds the wire view for a consultancy. The user must be
// the consultancy's backing user; Courses must be preloaded for them to appear.
func NewConsultancyView(c *Consultancy, u *User) ConsultancyView {
	courses := make([]CourseView, 0, len(c.Courses))
	for i := range c.Courses {
		courses = append(courses, NewCourseView(&c.Courses[i], c.Name))
	}

	countries := c.CountriesOperated
	if countries == nil {
		countries = []string{}
	}

	return ConsultancyView{
		ID:                c.ID,
		Name:              c.Name,
		Address:           c.Address,
		Description:       c.Description,
		ProfileImage:      c.ProfileImage,
		PhoneNo:           c.PhoneNo,
		Email:             u.Email,
		Website:           c.Website,
		CountriesOperated: countries,
		IsVerified:        c.IsVerified,
		Courses:           courses,
		IsAdmin:           u.IsAdmin(),
		IsConsultancy:     u.IsConsultancy(),
	}
}
