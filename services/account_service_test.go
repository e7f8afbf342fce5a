package services

import (
	"errors"
	"testing"

	"github.com/gradpath/consultancy-api/model"
)

func TestRegisterCreatesUserConsultancyAndToken(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	token, consultancyID, err := accounts.Register(RegisterInput{
		Username: "globalpath",
		Email:    "info@globalpath.example.com",
		Password: "StrongPass1",
		Name:     "Global Path Consultancy",
		Address:  "12 Harbor Road",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if consultancyID == 0 {
		t.Fatal("expected a consultancy id")
	}

	var user model.User
	if err := db.Where("username = ?", "globalpath").First(&user).Error; err != nil {
		t.Fatalf("load registered user: %v", err)
	}
	if user.Role != model.RoleConsultancy {
		t.Fatalf("expected role %q, got %q", model.RoleConsultancy, user.Role)
	}
	if user.PasswordHash == "StrongPass1" {
		t.Fatal("password stored in plain text")
	}

	var consultancy model.Consultancy
	if err := db.First(&consultancy, consultancyID).Error; err != nil {
		t.Fatalf("load registered consultancy: %v", err)
	}
	if consultancy.UserID != user.ID {
		t.Fatalf("consultancy bound to user %d, expected %d", consultancy.UserID, user.ID)
	}
	if consultancy.IsVerified {
		t.Fatal("new consultancy must start unverified")
	}
}

func TestRegisterRejectsDuplicateUsernameOrEmail(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	base := RegisterInput{
		Username: "firstmove",
		Email:    "first@example.com",
		Password: "StrongPass1",
		Name:     "First Move",
		Address:  "Addr",
	}
	if _, _, err := accounts.Register(base); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name: "duplicate username",
			input: RegisterInput{
				Username: "firstmove",
				Email:    "other@example.com",
				Password: "StrongPass1",
				Name:     "Other",
				Address:  "Addr",
			},
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Username: "othername",
				Email:    "first@example.com",
				Password: "StrongPass1",
				Name:     "Other",
				Address:  "Addr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := accounts.Register(tt.input); !errors.Is(err, ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}
		})
	}

	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 1 {
		t.Fatalf("expected 1 user after rejected registrations, got %d", userCount)
	}
}

func TestLoginReturnsSameTokenEveryTime(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	registered, _, err := accounts.Register(RegisterInput{
		Username: "steadykey",
		Email:    "steady@example.com",
		Password: "StrongPass1",
		Name:     "Steady Key",
		Address:  "Addr",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := accounts.Login("steadykey", "StrongPass1")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := accounts.Login("steadykey", "StrongPass1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first != registered {
		t.Fatalf("login token %q differs from registration token %q", first, registered)
	}
	if first != second {
		t.Fatalf("repeated logins returned different tokens: %q vs %q", first, second)
	}

	var tokenCount int64
	if err := db.Model(&model.AuthToken{}).Count(&tokenCount).Error; err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	if tokenCount != 1 {
		t.Fatalf("expected exactly 1 token row, got %d", tokenCount)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	if _, _, err := accounts.Register(RegisterInput{
		Username: "lockedout",
		Email:    "locked@example.com",
		Password: "StrongPass1",
		Name:     "Locked Out",
		Address:  "Addr",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := accounts.Login("lockedout", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := accounts.Login("nobody", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown username: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnassignedRole(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	hash, err := hashForTest("StrongPass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := model.User{
		Username:     "limbo",
		Email:        "limbo@example.com",
		PasswordHash: hash,
		Role:         model.RoleUnassigned,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := accounts.Login("limbo", "StrongPass1"); !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	_, consultancyID, err := accounts.Register(RegisterInput{
		Username: "leaving",
		Email:    "leaving@example.com",
		Password: "StrongPass1",
		Name:     "Leaving Soon",
		Address:  "Addr",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var user model.User
	if err := db.Where("username = ?", "leaving").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	createCourse(t, db, consultancyID, "IELTS Prep", []string{"ielts"})
	createCourse(t, db, consultancyID, "Visa Counseling", []string{"visa"})

	if err := accounts.DeleteAccount(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var courseCount, consultancyCount, userCount, tokenCount int64
	db.Model(&model.Course{}).Where("consultancy_id = ?", consultancyID).Count(&courseCount)
	db.Model(&model.Consultancy{}).Where("id = ?", consultancyID).Count(&consultancyCount)
	db.Model(&model.User{}).Where("id = ?", user.ID).Count(&userCount)
	db.Model(&model.AuthToken{}).Where("user_id = ?", user.ID).Count(&tokenCount)

	if courseCount != 0 || consultancyCount != 0 || userCount != 0 || tokenCount != 0 {
		t.Fatalf("cascade left rows behind: courses=%d consultancies=%d users=%d tokens=%d",
			courseCount, consultancyCount, userCount, tokenCount)
	}
}

func TestDeleteAccountFreesIdentityForReRegistration(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	input := RegisterInput{
		Username: "phoenix",
		Email:    "phoenix@example.com",
		Password: "StrongPass1",
		Name:     "Phoenix Co",
		Address:  "Addr",
	}
	if _, _, err := accounts.Register(input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	var user model.User
	if err := db.Where("username = ?", "phoenix").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if err := accounts.DeleteAccount(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// The deleted row must not linger in the unique indexes: the same
	// username and email register cleanly right away.
	token, consultancyID, err := accounts.Register(input)
	if err != nil {
		t.Fatalf("re-register after delete: %v", err)
	}
	if token == "" || consultancyID == 0 {
		t.Fatalf("re-register returned token=%q consultancy=%d", token, consultancyID)
	}

	var total int64
	if err := db.Unscoped().Model(&model.User{}).Where("username = ?", "phoenix").Count(&total).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected the old row gone for good, found %d rows", total)
	}
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	if err := accounts.DeleteAccount(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConsultancyLookupForNonConsultancyUser(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	hash, err := hashForTest("StrongPass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := model.User{
		Username:     "staffonly",
		Email:        "staff@example.com",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := accounts.Consultancy(user.ID); !errors.Is(err, ErrNotAConsultancy) {
		t.Fatalf("expected ErrNotAConsultancy, got %v", err)
	}
}
