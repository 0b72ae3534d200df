package validator

import (
	"errors"
	"strings"
	"testing"
)

type sampleForm struct {
	Name  string `form:"name" validate:"required,no_html"`
	Email string `form:"email" validate:"required,email"`
	Note  string `validate:"max=5"`
}

func TestFieldErrorsUseFormNames(t *testing.T) {
	err := Validate(sampleForm{Name: "<b>x</b>", Email: "not-an-email", Note: "too long"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FieldErrors(err)
	expected := map[string]string{"name": "no_html", "email": "email", "Note": "max"}
	for field, tag := range expected {
		if fields[field] != tag {
			t.Errorf("expected %s to fail %s, got %q (all: %v)", field, tag, fields[field], fields)
		}
	}
}

func TestValidFormPasses(t *testing.T) {
	if err := Validate(sampleForm{Name: "Aiko", Email: "aiko@example.com"}); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(errors.New("boom")) != nil {
		t.Fatalf("expected nil for non-validation errors")
	}
	if FieldErrors(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestSanitizeString(t *testing.T) {
	got := SanitizeString(`Hello <script>alert(1)</script><b>world</b>`)
	if strings.Contains(got, "<") {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}
	if !strings.Contains(got, "world") {
		t.Fatalf("expected text content to survive, got %q", got)
	}
}

func TestNormalizeSpaces(t *testing.T) {
	if got := NormalizeSpaces("a \n\t b"); got != "a b" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestStripTagsKeepsPlainText(t *testing.T) {
	if got := StripTags(`Tom & "Jerry" <i>co</i>`); got != `Tom & "Jerry" co` {
		t.Fatalf("unexpected result %q", got)
	}
}
