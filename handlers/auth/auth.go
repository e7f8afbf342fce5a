package auth

import (
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/middleware"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	db                   *gorm.DB
	accounts             *services.AccountService
	validator            *validation.Validator
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		accounts:             services.NewAccountService(db),
		validator:            validation.NewValidator(),
		bruteForceProtection: bruteForceProtection,
	}
}
