package admin

import (
	"github.com/gradpath/consultancy-api/services"
	"github.com/gradpath/consultancy-api/utils/validation"
	"gorm.io/gorm"
)

// AdminHandler handles the unrestricted admin CRUD surface. These routes sit
// behind the admin role middleware; unexpected creation failures are surfaced
// to the admin caller with the raw message.
type AdminHandler struct {
	db        *gorm.DB
	accounts  *services.AccountService
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		db:        db,
		accounts:  services.NewAccountService(db),
		validator: validation.NewValidator(),
	}
}
