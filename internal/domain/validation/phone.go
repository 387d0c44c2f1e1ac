package validation

import (
	"regexp"
	"strings"

	"storefront/internal/errors"
)

var ErrPhoneNumber = errors.New("phone number must have 7 to 15 digits")

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// Phone validates a contact phone number. Common separators are ignored and
// a leading + is allowed.
func Phone(phone string) error {
	if !phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(phone))) {
		return ErrPhoneNumber
	}

	return nil
}
