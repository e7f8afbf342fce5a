package auth

import (
	"errors"

	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/crypto"
	"gorm.io/gorm"
)

// GetOrCreateToken returns the user's opaque bearer token, creating one if
// none exists. The unique index on user_id keeps concurrent duplicate logins
// from creating two tokens: the loser of the race re-reads the winner's row.
func GetOrCreateToken(db *gorm.DB, userID uint) (string, error) {
	var token model.AuthToken
	err := db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	key, err := crypto.GenerateTokenKey()
	if err != nil {
		return "", err
	}

	token = model.AuthToken{Key: key, UserID: userID}
	if createErr := db.Create(&token).Error; createErr != nil {
		if lookupErr := db.Where("user_id = ?", userID).First(&token).Error; lookupErr == nil {
			return token.Key, nil
		}
		return "", createErr
	}

	return token.Key, nil
}

// LookupToken resolves an opaque token key to its row. Returns
// gorm.ErrRecordNotFound when the key is unknown.
func LookupToken(db *gorm.DB, key string) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := db.Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken deletes the user's token, if any. Tokens have no soft delete;
// revocation is immediate.
func RevokeToken(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error
}
