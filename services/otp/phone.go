package otp

import (
	"regexp"
	"strings"
)

// Swiss mobile number: +41 followed by exactly nine digits.
var swissPhoneRe = regexp.MustCompile(`^\+41\d{9}$`)

// CleanPhone strips the whitespace users type between digit groups.
func CleanPhone(phone string) string {
	return strings.ReplaceAll(phone, " ", "")
}

// IsValidSwissPhone reports whether the cleaned input matches the Swiss
// mobile pattern. Invalid numbers are a local validation error and are
// never sent to the OTP service.
func IsValidSwissPhone(phone string) bool {
	return swissPhoneRe.MatchString(CleanPhone(phone))
}
