package categories

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Category names must not carry markup or escape characters.
var unsafeNameChars = regexp.MustCompile("[<>/`\\\\{}]")

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingFields
	}
	if unsafeNameChars.MatchString(name) {
		return ErrInvalidCharacters
	}
	return nil
}

// foldName normalises a name for case-insensitive uniqueness checks. A fresh
// Caser per call keeps this safe under concurrent requests.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
