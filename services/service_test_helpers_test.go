package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "consultancy-test.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Consultancy{},
		&model.Course{},
		&model.AuthToken{},
		&model.CronJobLog{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	return db
}

func hashForTest(password string) (string, error) {
	return auth.HashPassword(password)
}

func createConsultancyAccount(t *testing.T, db *gorm.DB, username, name string, countries []string) (*model.User, *model.Consultancy) {
	t.Helper()

	hash, err := auth.HashPassword("StrongPass1")
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}

	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         model.RoleConsultancy,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}

	consultancy := model.Consultancy{
		UserID:            user.ID,
		Name:              name,
		Address:           "1 Test Street",
		CountriesOperated: countries,
	}
	if err := db.Create(&consultancy).Error; err != nil {
		t.Fatalf("create test consultancy: %v", err)
	}

	return &user, &consultancy
}

func createCourse(t *testing.T, db *gorm.DB, consultancyID uint, name string, tags []string) *model.Course {
	t.Helper()

	course := model.Course{
		ConsultancyID: consultancyID,
		Name:          name,
		Tags:          tags,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create test course: %v", err)
	}

	return &course
}
