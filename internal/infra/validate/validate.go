// Package validate holds the field-format predicates consumed by the
// console before any value reaches the core. They are pass/fail only; the
// caller owns re-prompting.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var dateSeparators = regexp.MustCompile(`[.,\-/\s]`)

// Date accepts day/month/year with any of `. , - / space` as separator.
// Day must be 1–31, month 1–12, year 1900–2100. There is deliberately no
// month-length or leap-year cross-check.
func Date(s string) bool {
	normalized := dateSeparators.ReplaceAllString(s, "/")
	parts := strings.Split(normalized, "/")
	if len(parts) != 3 {
		return false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	return day >= 1 && day <= 31 &&
		month >= 1 && month <= 12 &&
		year >= 1900 && year <= 2100
}

// HomeAddress requires more than 5 characters, restricted to letters,
// digits, spaces, commas, hyphens, periods and slashes, with at least one
// letter.
func HomeAddress(s string) bool {
	if len(s) <= 5 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
		case strings.ContainsRune(" ,-./", r):
		default:
			return false
		}
	}
	return hasLetter
}

// Phone strips spaces and hyphens and requires 7–15 digits, digits only.
func Phone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(s)
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Password requires at least 8 characters with at least one digit and one
// letter. No symbol requirement.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	hasDigit, hasLetter := false, false
	for _, r := range s {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasDigit && hasLetter
}
