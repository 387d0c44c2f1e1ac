// Package validation holds the pure checks that gate payment, address and
// seller forms. Every check returns nil on success or an error whose message
// can be shown next to the offending field.
package validation

import (
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

const (
	minCardDigits = 13
	maxCardDigits = 19
)

var (
	ErrCardNumberLength   = errors.New("card number must have 13 to 19 digits")
	ErrCardNumberChecksum = errors.New("card number is invalid")
	ErrExpiryFormat       = errors.New("expiry must be in MM-YY format")
	ErrExpiryMonth        = errors.New("expiry month must be between 01 and 12")
	ErrCardExpired        = errors.New("card has expired")
	ErrCVV                = errors.New("security code must have 3 digits")
	ErrCVVAmex            = errors.New("security code must have 4 digits")
)

// DigitsOnly drops every non-digit rune from s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, s)
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Luhn reports whether a string of digits passes the Luhn checksum.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// CardNumber validates a card number as typed by the user.
func CardNumber(number string) error {
	digits := DigitsOnly(number)
	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return ErrCardNumberLength
	}
	if !Luhn(digits) {
		return ErrCardNumberChecksum
	}

	return nil
}

// Expiry validates an "MM-YY" expiry against the month containing now.
// A card expiring in the current month is still valid.
func Expiry(expiry string, now time.Time) error {
	month, year, err := ParseExpiry(expiry)
	if err != nil {
		return err
	}

	current := now.Year()*12 + int(now.Month())
	if year*12+month < current {
		return ErrCardExpired
	}

	return nil
}

// ParseExpiry splits "MM-YY" into a month and a four digit year.
func ParseExpiry(expiry string) (month, year int, err error) {
	if len(expiry) != 5 || expiry[2] != '-' || !isDigits(expiry[:2]) || !isDigits(expiry[3:]) {
		return 0, 0, ErrExpiryFormat
	}

	month, err = strconv.Atoi(expiry[:2])
	if err != nil {
		return 0, 0, ErrExpiryFormat
	}
	yy, err := strconv.Atoi(expiry[3:])
	if err != nil {
		return 0, 0, ErrExpiryFormat
	}
	if month < 1 || month > 12 {
		return 0, 0, ErrExpiryMonth
	}

	return month, 2000 + yy, nil
}

// CVV validates a security code for the given card type.
func CVV(cvv string, cardType entity.PaymentType) error {
	expected, errWrongLength := 3, ErrCVV
	if cardType == entity.PaymentTypeAmex {
		expected, errWrongLength = 4, ErrCVVAmex
	}

	if len(cvv) != expected || !isDigits(cvv) {
		return errWrongLength
	}

	return nil
}

// DetectCardType guesses the card network from the leading digits.
// Unrecognised prefixes are treated as VISA.
func DetectCardType(number string) entity.PaymentType {
	digits := DigitsOnly(number)

	switch {
	case strings.HasPrefix(digits, "4"):
		return entity.PaymentTypeVisa
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return entity.PaymentTypeAmex
	case strings.HasPrefix(digits, "5"), strings.HasPrefix(digits, "2"):
		return entity.PaymentTypeMasterCard
	default:
		return entity.PaymentTypeVisa
	}
}

// Last4 returns the last four digits of a card or account number.
func Last4(number string) string {
	digits := DigitsOnly(number)
	if len(digits) <= 4 {
		return digits
	}

	return digits[len(digits)-4:]
}
