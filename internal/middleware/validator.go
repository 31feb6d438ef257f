package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidateVisualType checks the declared visual type
func ValidateVisualType(v string) error {
	allowed := map[string]bool{
		"withSmile":    true,
		"withoutSmile": true,
	}
	if !allowed[v] {
		return fmt.Errorf("invalid visual type: %s (allowed: withSmile, withoutSmile)", v)
	}
	return nil
}

// ValidateFormat checks the declared canvas format. Empty is allowed; the
// format is then autodetected from the dimensions.
func ValidateFormat(f string) error {
	if f == "" {
		return nil
	}
	allowed := map[string]bool{
		"landscape": true,
		"portrait":  true,
		"square":    true,
	}
	if !allowed[strings.ToLower(f)] {
		return fmt.Errorf("invalid format: %s (allowed: landscape, portrait, square)", f)
	}
	return nil
}

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,[A-Za-z0-9+/]+=*$`)

// ValidateImageDataURL checks that the uploaded creative is a base64 image
// data URL of an allowed type
func ValidateImageDataURL(image string) error {
	if image == "" {
		return fmt.Errorf("image cannot be empty")
	}
	if !strings.HasPrefix(image, "data:image/") {
		return fmt.Errorf("image must be a data URL (data:image/...)")
	}
	if !dataURLPattern.MatchString(image) {
		return fmt.Errorf("invalid image data URL (allowed types: png, jpeg, webp; must be base64)")
	}
	return nil
}

// ValidateDimensions checks uploaded image dimensions
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image dimensions must be positive")
	}
	const maxSide = 20000
	if width > maxSide || height > maxSide {
		return fmt.Errorf("image dimensions too large (max %dpx per side)", maxSide)
	}
	return nil
}

// ValidatePercent checks a canvas coordinate expressed as percent
func ValidatePercent(v float64, field string) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100", field)
	}
	return nil
}

// ValidateRegionID validates evaluation region identifiers
func ValidateRegionID(id string) error {
	if id == "" {
		return fmt.Errorf("region id cannot be empty")
	}
	pattern := `^[a-z0-9-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid region id format (lowercase, digits, dash only)")
	}
	return nil
}

// ValidateDrawMode validates measurement line modes
func ValidateDrawMode(mode string) error {
	allowed := map[string]bool{
		"s-height":     true,
		"frame-border": true,
		"frame-image":  true,
		"smile-size":   true,
	}
	if !allowed[mode] {
		return fmt.Errorf("invalid draw mode: %s (allowed: s-height, frame-border, frame-image, smile-size)", mode)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

var sessionIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateSessionID validates review session ID format (UUID v4)
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if !sessionIDPattern.MatchString(id) {
		return fmt.Errorf("invalid session ID format")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidatePage validates pagination page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
