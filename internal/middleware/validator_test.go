package middleware

import "testing"

func TestValidateVisualType(t *testing.T) {
	if err := ValidateVisualType("withSmile"); err != nil {
		t.Fatalf("withSmile rejected: %v", err)
	}
	if err := ValidateVisualType("withoutSmile"); err != nil {
		t.Fatalf("withoutSmile rejected: %v", err)
	}
	if err := ValidateVisualType("sideways"); err == nil {
		t.Fatalf("bogus visual type accepted")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"", "landscape", "Portrait", "square"} {
		if err := ValidateFormat(f); err != nil {
			t.Fatalf("format %q rejected: %v", f, err)
		}
	}
	if err := ValidateFormat("circle"); err == nil {
		t.Fatalf("bogus format accepted")
	}
}

func TestValidateImageDataURL(t *testing.T) {
	valid := []string{
		"data:image/png;base64,iVBORw0KGgo=",
		"data:image/jpeg;base64,/9j/4AAQ",
		"data:image/webp;base64,UklGRg==",
	}
	for _, v := range valid {
		if err := ValidateImageDataURL(v); err != nil {
			t.Fatalf("%q rejected: %v", v, err)
		}
	}

	invalid := []string{
		"",
		"http://example.com/a.png",
		"data:image/gif;base64,R0lGOD",
		"data:image/png;base64,not valid base64!",
	}
	for _, v := range invalid {
		if err := ValidateImageDataURL(v); err == nil {
			t.Fatalf("%q accepted", v)
		}
	}
}

func TestValidateDimensions(t *testing.T) {
	if err := ValidateDimensions(1920, 1080); err != nil {
		t.Fatalf("valid dimensions rejected: %v", err)
	}
	if err := ValidateDimensions(0, 1080); err == nil {
		t.Fatalf("zero width accepted")
	}
	if err := ValidateDimensions(1920, 25000); err == nil {
		t.Fatalf("oversized height accepted")
	}
}

func TestValidatePercent(t *testing.T) {
	if err := ValidatePercent(0, "x"); err != nil {
		t.Fatalf("0 rejected: %v", err)
	}
	if err := ValidatePercent(100, "x"); err != nil {
		t.Fatalf("100 rejected: %v", err)
	}
	if err := ValidatePercent(-0.1, "x"); err == nil {
		t.Fatalf("negative accepted")
	}
	if err := ValidatePercent(100.1, "y"); err == nil {
		t.Fatalf("over 100 accepted")
	}
}

func TestValidateRegionID(t *testing.T) {
	if err := ValidateRegionID("safe-zone"); err != nil {
		t.Fatalf("safe-zone rejected: %v", err)
	}
	for _, id := range []string{"", "Safe-Zone", "zone;drop table"} {
		if err := ValidateRegionID(id); err == nil {
			t.Fatalf("%q accepted", id)
		}
	}
}

func TestValidateDrawMode(t *testing.T) {
	for _, m := range []string{"s-height", "frame-border", "frame-image", "smile-size"} {
		if err := ValidateDrawMode(m); err != nil {
			t.Fatalf("%q rejected: %v", m, err)
		}
	}
	if err := ValidateDrawMode("freehand"); err == nil {
		t.Fatalf("bogus mode accepted")
	}
}

func TestValidateSessionID(t *testing.T) {
	if err := ValidateSessionID("2c1a9a52-8a5a-4c3b-9f05-3bb0a1a0f111"); err != nil {
		t.Fatalf("uuid rejected: %v", err)
	}
	for _, id := range []string{"", "not-a-uuid", "2C1A9A52-8A5A-4C3B-9F05-3BB0A1A0F111"} {
		if err := ValidateSessionID(id); err == nil {
			t.Fatalf("%q accepted", id)
		}
	}
}

func TestPaginationDefaults(t *testing.T) {
	if got := ValidateLimit(0); got != 20 {
		t.Fatalf("default limit = %d", got)
	}
	if got := ValidateLimit(500); got != 100 {
		t.Fatalf("capped limit = %d", got)
	}
	if got := ValidateLimit(42); got != 42 {
		t.Fatalf("limit = %d", got)
	}
	if got := ValidatePage(0); got != 1 {
		t.Fatalf("default page = %d", got)
	}
	if got := ValidatePage(3); got != 3 {
		t.Fatalf("page = %d", got)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("hello\x00world"); got != "helloworld" {
		t.Fatalf("null byte survived: %q", got)
	}
	if got := SanitizeString("  padded\x07  "); got != "padded" {
		t.Fatalf("got %q", got)
	}
}
