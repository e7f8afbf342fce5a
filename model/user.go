package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Every account maps to exactly one role; handlers branch on the
// role field, never on presence of a consultancy record.
const (
	RoleAdmin       = "admin"
	RoleConsultancy = "consultancy"
	RoleUnassigned  = "unassigned"
)

// User represents a registered account in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'unassigned'" json:"role"`

	// Relationships
	Consultancy *Consultancy `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"consultancy,omitempty"`
	Token       *AuthToken   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsConsultancy reports whether the user owns a consultancy account.
func (u *User) IsConsultancy() bool {
	return u.Role == RoleConsultancy
}

// UserView is the wire representation of a user. The boolean flags mirror the
// role field for clients that key off them.
type UserView struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	IsStaff       bool      `json:"is_staff"`
	IsConsultancy bool      `json:"is_consultancy"`
	CreatedAt     time.Time `json:"created_at"`
}

// View converts a User to its wire representation.
func (u *User) View() UserView {
	return UserView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		IsStaff:       u.IsAdmin(),
		IsConsultancy: u.IsConsultancy(),
		CreatedAt:     u.CreatedAt,
	}
}
