package types

import (
	"regexp"
	"strings"

	ierr "github.com/oficinago/oficinago/internal/errors"
)

// DefaultCountryPrefix is prepended to phone numbers that do not already
// carry it when building messaging deep links (Brazil).
const DefaultCountryPrefix = "55"

var (
	nonDigitRegex   = regexp.MustCompile(`\D`)
	validPhoneRegex = regexp.MustCompile(`^[0-9]{10,11}$`)
)

// StripPhone removes every non-digit character from a raw phone input
func StripPhone(raw string) string {
	return nonDigitRegex.ReplaceAllString(raw, "")
}

// ValidatePhone checks that the digit-stripped phone is a valid local number
// (10 or 11 digits, DDD included). Records with any other shape are rejected
// at the boundary before persistence or rendering is attempted.
func ValidatePhone(raw string) (string, error) {
	digits := StripPhone(raw)
	if !validPhoneRegex.MatchString(digits) {
		return "", ierr.NewError("invalid phone number").
			WithHint("Digite apenas números (10 ou 11 dígitos)").
			WithReportableDetails(map[string]any{"phone": raw}).
			Mark(ierr.ErrValidation)
	}
	return digits, nil
}

// InternationalPhone strips non-digits and prepends the country prefix when
// it is not already present, yielding the wa.me addressable number.
func InternationalPhone(raw string) string {
	digits := StripPhone(raw)
	if strings.HasPrefix(digits, DefaultCountryPrefix) {
		return digits
	}
	return DefaultCountryPrefix + digits
}
