package services

import (
	"errors"

	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/auth"
	"gorm.io/gorm"
)

// AccountService owns the user/consultancy account lifecycle: registration,
// login and cascading account deletion.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService creates a new account service
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// RegisterInput holds the fields for self-service consultancy registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Address  string
}

// Register creates a consultancy account: a user with the consultancy role,
// its consultancy profile and a bearer token, in a single transaction. A
// failure at any step leaves no orphaned rows behind.
func (s *AccountService) Register(in RegisterInput) (token string, consultancyID uint, err error) {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return "", 0, err
	}
	if count > 0 {
		return "", 0, ErrConflict
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", 0, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         model.RoleConsultancy,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		consultancy := model.Consultancy{
			UserID:  user.ID,
			Name:    in.Name,
			Address: in.Address,
		}
		if err := tx.Create(&consultancy).Error; err != nil {
			return err
		}
		consultancyID = consultancy.ID

		key, err := auth.GetOrCreateToken(tx, user.ID)
		if err != nil {
			return err
		}
		token = key

		return nil
	})
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index decides the loser, which still gets a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", 0, ErrConflict
		}
		return "", 0, err
	}

	return token, consultancyID, nil
}

// Login checks credentials and returns the account's persistent token.
// Repeated logins return the identical key. Accounts with the unassigned role
// may not log in.
func (s *AccountService) Login(username, password string) (string, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.IsAdmin() && !user.IsConsultancy() {
		return "", ErrInvalidAccountType
	}

	return auth.GetOrCreateToken(s.db, user.ID)
}

// DeleteAccount deletes a user and cascades to its consultancy, that
// consultancy's courses and the user's token, all in one transaction. The
// user route is the only deletion path for a consultancy. The deletes are
// hard: a soft-deleted user would keep holding its slot in the unique
// username and email indexes, blocking re-registration of the same identity.
func (s *AccountService) DeleteAccount(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var consultancy model.Consultancy
		err := tx.Where("user_id = ?", user.ID).First(&consultancy).Error
		switch {
		case err == nil:
			if err := tx.Unscoped().Where("consultancy_id = ?", consultancy.ID).Delete(&model.Course{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&consultancy).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := auth.RevokeToken(tx, user.ID); err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
}

// Consultancy returns the consultancy owned by the given user, or
// ErrNotAConsultancy when none exists.
func (s *AccountService) Consultancy(userID uint) (*model.Consultancy, error) {
	var consultancy model.Consultancy
	if err := s.db.Where("user_id = ?", userID).First(&consultancy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAConsultancy
		}
		return nil, err
	}
	return &consultancy, nil
}

// ConsultancyWithCourses returns the user's consultancy with its courses
// preloaded.
func (s *AccountService) ConsultancyWithCourses(userID uint) (*model.Consultancy, error) {
	var consultancy model.Consultancy
	if err := s.db.Preload("Courses").Where("user_id = ?", userID).First(&consultancy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAConsultancy
		}
		return nil, err
	}
	return &consultancy, nil
}
