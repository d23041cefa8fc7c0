package products

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	defaultDescription = "Sin descripción"
	maxDescriptionLen  = 255
)

var (
	nameRe  = regexp.MustCompile(`^[\w\s.-]+$`)
	imageRe = regexp.MustCompile(`^data:image/(png|jpg|jpeg);base64,([a-zA-Z0-9+/=]+)$`)
)

// resolveDescription applies the default and enforces the length cap. The
// cap counts characters, not bytes, so accented text is not shortchanged.
func resolveDescription(raw *string) (string, error) {
	if raw == nil {
		return defaultDescription, nil
	}
	if utf8.RuneCountInString(*raw) > maxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	if *raw == "" {
		return defaultDescription, nil
	}
	return *raw, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

func validateImage(image string) error {
	if !imageRe.MatchString(image) {
		return ErrInvalidImage
	}
	return nil
}

// missingCreateFields mirrors the required-field sweep done before the
// per-field checks: absence is reported en bloc, invalid values one at a time.
func missingCreateFields(in CreateInput) []string {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Stock == nil {
		missing = append(missing, "stock")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Image == "" {
		missing = append(missing, "image")
	}
	return missing
}

func missingUpdateFields(in UpdateInput) []string {
	var missing []string
	if in.ID == nil {
		missing = append(missing, "id")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Stock == nil {
		missing = append(missing, "stock")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Status == nil {
		missing = append(missing, "status")
	}
	if in.Image == "" {
		missing = append(missing, "image")
	}
	if in.CategoryID == nil {
		missing = append(missing, "category_id")
	}
	return missing
}
