package model

import "time"

// AuthToken is the opaque bearer token for an account. At most one token
// exists per user; repeated logins return the same key until the row is
// deleted. Tokens do not expire.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for AuthToken
func (AuthToken) TableName() string {
	return "auth_tokens"
}
