/**
 * @description
 * Pure input-validation rules guarding registration, login, and the payment
 * workflow. Every function takes a raw string or number and returns a
 * boolean; callers translate false into a field-specific client error.
 *
 * The blacklist filter is defense in depth against injection-style payloads.
 * It is not a substitute for parameterized queries, which the store layer
 * uses regardless.
 */

package validate

import (
	"math"
	"regexp"
)

var (
	nameRe          = regexp.MustCompile(`^[A-Za-z\s]{1,50}$`)
	emailRe         = regexp.MustCompile(`^[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	idNumberRe      = regexp.MustCompile(`^\d{13}$`)
	accountNumberRe = regexp.MustCompile(`^[A-Za-z0-9]{5,20}$`)
	swiftCodeRe     = regexp.MustCompile(`^[A-Za-z0-9]{8,11}$`)
	blacklistRe     = regexp.MustCompile("[`<>;\"'(){}\\[\\]]")

	passwordLetterRe = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitRe  = regexp.MustCompile(`\d`)
	passwordSymbolRe = regexp.MustCompile(`[!@#$%^&*]`)
	passwordCharsRe  = regexp.MustCompile(`^[A-Za-z\d!@#$%^&*]{8,}$`)
)

// Name accepts letters and spaces, 1 to 50 characters, free of blacklisted
// characters.
func Name(s string) bool {
	return nameRe.MatchString(s) && AgainstBlacklist(s)
}

// Username accepts any characters between 3 and 20 long, free of
// blacklisted characters.
func Username(s string) bool {
	n := len([]rune(s))
	return n >= 3 && n <= 20 && AgainstBlacklist(s)
}

// Email performs basic email-shape validation. No blacklist check: the
// address grammar already excludes the dangerous characters.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// IDNumber accepts exactly 13 digits (South African ID format).
func IDNumber(s string) bool {
	return idNumberRe.MatchString(s) && AgainstBlacklist(s)
}

// AccountNumber accepts alphanumeric strings between 5 and 20 characters.
func AccountNumber(s string) bool {
	return accountNumberRe.MatchString(s)
}

// Amount accepts finite positive monetary values with at most two decimal
// places of precision. NaN and infinities are rejected explicitly.
func Amount(n float64) bool {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return false
	}
	cents := n * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// SwiftCode accepts 8 to 11 alphanumeric characters, case-insensitive.
func SwiftCode(s string) bool {
	return swiftCodeRe.MatchString(s)
}

// Password enforces the credential policy: at least 8 characters drawn from
// letters, digits, and the fixed symbol set, with at least one of each
// class present.
func Password(s string) bool {
	return passwordCharsRe.MatchString(s) &&
		passwordLetterRe.MatchString(s) &&
		passwordDigitRe.MatchString(s) &&
		passwordSymbolRe.MatchString(s)
}

// AgainstBlacklist rejects input containing characters commonly used in
// injection payloads.
func AgainstBlacklist(s string) bool {
	return !blacklistRe.MatchString(s)
}

// ToCents converts a validated decimal amount into int64 minor units.
// Callers must run Amount first; out-of-policy input still rounds safely.
func ToCents(n float64) int64 {
	return int64(math.Round(n * 100))
}
