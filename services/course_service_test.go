package services

import (
	"errors"
	"testing"

	"github.com/gradpath/consultancy-api/model"
)

func TestAddCourseRequiresConsultancy(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	hash, err := hashForTest("StrongPass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := model.User{
		Username:     "plainadmin",
		Email:        "plainadmin@example.com",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := courses.Add(user.ID, "IELTS Prep", []string{"ielts"}); !errors.Is(err, ErrNotAConsultancy) {
		t.Fatalf("expected ErrNotAConsultancy, got %v", err)
	}
}

func TestEditCourseScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	ownerUser, ownerConsultancy := createConsultancyAccount(t, db, "owner", "Owner Co", nil)
	otherUser, _ := createConsultancyAccount(t, db, "other", "Other Co", nil)
	course := createCourse(t, db, ownerConsultancy.ID, "IELTS Prep", []string{"ielts"})

	newName := "IELTS Intensive"
	if _, err := courses.Edit(otherUser.ID, course.ID, &newName, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign edit: expected ErrNotFound, got %v", err)
	}

	updated, err := courses.Edit(ownerUser.ID, course.ID, &newName, nil)
	if err != nil {
		t.Fatalf("owner edit: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected name %q, got %q", newName, updated.Name)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "ielts" {
		t.Fatalf("tags changed on name-only edit: %v", updated.Tags)
	}
}

func TestEditCourseReplacesTags(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	user, consultancy := createConsultancyAccount(t, db, "tagger", "Tagger Co", nil)
	course := createCourse(t, db, consultancy.ID, "Visa Counseling", []string{"visa", "counseling"})

	tags := []string{"immigration"}
	updated, err := courses.Edit(user.ID, course.ID, nil, &tags)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "immigration" {
		t.Fatalf("expected tags replaced wholesale, got %v", updated.Tags)
	}
	if updated.Name != "Visa Counseling" {
		t.Fatalf("name changed on tags-only edit: %q", updated.Name)
	}
}

func TestDeleteCourseScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	ownerUser, ownerConsultancy := createConsultancyAccount(t, db, "owner", "Owner Co", nil)
	otherUser, _ := createConsultancyAccount(t, db, "other", "Other Co", nil)
	course := createCourse(t, db, ownerConsultancy.ID, "IELTS Prep", nil)

	if err := courses.Delete(otherUser.ID, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: expected ErrNotFound, got %v", err)
	}
	if err := courses.Delete(ownerUser.ID, course.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := courses.Delete(ownerUser.ID, course.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat delete: expected ErrNotFound, got %v", err)
	}
}

func TestLinkCopiesCourseSnapshot(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	sourceUser, sourceConsultancy := createConsultancyAccount(t, db, "source", "Source Co", nil)
	linkerUser, linkerConsultancy := createConsultancyAccount(t, db, "linker", "Linker Co", nil)
	source := createCourse(t, db, sourceConsultancy.ID, "TOEFL Prep", []string{"toefl", "english"})

	copied, err := courses.Link(linkerUser.ID, source.ID)
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if copied.ConsultancyID != linkerConsultancy.ID {
		t.Fatalf("copy owned by consultancy %d, expected %d", copied.ConsultancyID, linkerConsultancy.ID)
	}
	if copied.ID == source.ID {
		t.Fatal("link must create a new course row")
	}
	if copied.Name != source.Name {
		t.Fatalf("copy name %q, expected %q", copied.Name, source.Name)
	}

	// Editing the original afterwards must not touch the copy.
	newName := "TOEFL Advanced"
	newTags := []string{"toefl-advanced"}
	if _, err := courses.Edit(sourceUser.ID, source.ID, &newName, &newTags); err != nil {
		t.Fatalf("edit source: %v", err)
	}

	var reloaded model.Course
	if err := db.First(&reloaded, copied.ID).Error; err != nil {
		t.Fatalf("reload copy: %v", err)
	}
	if reloaded.Name != "TOEFL Prep" {
		t.Fatalf("copy name drifted after source edit: %q", reloaded.Name)
	}
	if len(reloaded.Tags) != 2 || reloaded.Tags[0] != "toefl" || reloaded.Tags[1] != "english" {
		t.Fatalf("copy tags drifted after source edit: %v", reloaded.Tags)
	}
}

func TestLinkOwnCourseRejected(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	user, consultancy := createConsultancyAccount(t, db, "selfref", "Selfref Co", nil)
	course := createCourse(t, db, consultancy.ID, "IELTS Prep", nil)

	if _, err := courses.Link(user.ID, course.ID); !errors.Is(err, ErrCourseAlreadyLinked) {
		t.Fatalf("expected ErrCourseAlreadyLinked, got %v", err)
	}
}

func TestLinkUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	user, _ := createConsultancyAccount(t, db, "linker", "Linker Co", nil)

	if _, err := courses.Link(user.ID, 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnlinkRemovesOnlyOwnCopy(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseService(db)

	_, sourceConsultancy := createConsultancyAccount(t, db, "source", "Source Co", nil)
	linkerUser, _ := createConsultancyAccount(t, db, "linker", "Linker Co", nil)
	source := createCourse(t, db, sourceConsultancy.ID, "TOEFL Prep", []string{"toefl"})

	copied, err := courses.Link(linkerUser.ID, source.ID)
	if err != nil {
		t.Fatalf("link: %v", err)
	}

	// Unlinking by the source's id fails: the caller owns only the copy.
	if err := courses.Unlink(linkerUser.ID, source.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unlink source id: expected ErrNotFound, got %v", err)
	}

	if err := courses.Unlink(linkerUser.ID, copied.ID); err != nil {
		t.Fatalf("unlink copy: %v", err)
	}

	var sourceCount int64
	db.Model(&model.Course{}).Where("id = ?", source.ID).Count(&sourceCount)
	if sourceCount != 1 {
		t.Fatal("unlink deleted the original course")
	}
}
