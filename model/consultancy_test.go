package model

import "testing"

func TestOperatesIn(t *testing.T) {
	c := Consultancy{CountriesOperated: []string{"Nepal", "India"}}

	tests := []struct {
		country string
		want    bool
	}{
		{"Nepal", true},
		{"India", true},
		{"nepal", false},
		{"Nep", false},
		{"Australia", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.OperatesIn(tt.country); got != tt.want {
			t.Errorf("OperatesIn(%q) = %v, want %v", tt.country, got, tt.want)
		}
	}
}

func TestNewConsultancyViewNormalizesEmptyCollections(t *testing.T) {
	user := User{Email: "co@example.com", Role: RoleConsultancy}
	c := Consultancy{ID: 1, Name: "Bare Co"}

	view := NewConsultancyView(&c, &user)

	if view.Courses == nil {
		t.Fatal("courses must be an empty slice, not nil")
	}
	if view.CountriesOperated == nil {
		t.Fatal("countries must be an empty slice, not nil")
	}
	if view.Email != "co@example.com" {
		t.Fatalf("expected backing user email, got %q", view.Email)
	}
	if view.IsAdmin || !view.IsConsultancy {
		t.Fatalf("role flags wrong: admin=%v consultancy=%v", view.IsAdmin, view.IsConsultancy)
	}
}

func TestNewCourseViewCarriesConsultancyName(t *testing.T) {
	course := Course{ID: 7, ConsultancyID: 3, Name: "IELTS Prep", Tags: []string{"ielts"}}

	view := NewCourseView(&course, "Owner Co")

	if view.ID != 7 || view.Consultancy != 3 {
		t.Fatalf("ids wrong: %+v", view)
	}
	if view.ConsultancyName != "Owner Co" {
		t.Fatalf("expected consultancy name, got %q", view.ConsultancyName)
	}
}
