package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagEmail = "formemail"
	tagPhone = "formphone"

	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// emailRegex matches "local@domain.tld": no whitespace or '@' in either
// part and at least one dot in the domain. No DNS or MX checks.
//
// `\s` is ASCII only in Go, so Unicode separators (\p{Z}: no-break and em
// spaces, line and paragraph separators), vertical tab, next line and the
// byte order mark are excluded explicitly.
var emailRegex = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

const emailPart = `[^@\s\p{Z}\x{000B}\x{0085}\x{FEFF}]+`

// validate is shared by every predicate. A *validator.Validate caches
// struct metadata and is safe for concurrent use once tags are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	mustRegister(v, tagEmail, func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(trimSpace(fl.Field().String()))
	})

	mustRegister(v, tagPhone, func(fl validator.FieldLevel) bool {
		n := countDigits(fl.Field().String())
		return n >= minPhoneDigits && n <= maxPhoneDigits
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// IsValidEmail reports whether value is a string holding a plausible
// email address. Any non-string value is invalid.
func IsValidEmail(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return validate.Var(s, tagEmail) == nil
}

// IsValidPhone reports whether value is a string containing between 7
// and 15 digits once every non-digit is removed.
//
// Example:
//
//	"+971 50 123 4567" -> 12 digits -> valid
func IsValidPhone(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return validate.Var(s, tagPhone) == nil
}

// IsNonBlankString reports whether value is a string with something
// other than whitespace in it.
func IsNonBlankString(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return validate.Var(trimSpace(s), "required") == nil
}

// IsString reports whether value is a string. Blank strings pass.
func IsString(value any) bool {
	_, ok := value.(string)
	return ok
}

// OneOf returns a predicate accepting only strings equal to one of options.
func OneOf(options ...string) func(any) bool {
	tag := "oneof=" + strings.Join(options, " ")

	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		return validate.Var(s, tag) == nil
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
