package submission

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidPhone = errors.New("invalid phone")
)

var (
	emailRE    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRE    = regexp.MustCompile(`^[+\d][\d\s-]{6,}$`)
	nonDigitRE = regexp.MustCompile(`\D`)
)

// Validate checks the contact fields. Empty fields are not validated.
func Validate(email, phone string) error {
	var errs []error
	if email != "" && !emailRE.MatchString(email) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidEmail, email))
	}
	if phone != "" && !phoneRE.MatchString(phone) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPhone, phone))
	}
	return errors.Join(errs...)
}

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}

	runes := []rune(local)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes) + "***@" + domain
}

// MaskPhone keeps every digit but the last four.
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := nonDigitRE.ReplaceAllString(phone, "")
	if len(digits) <= 4 {
		return "****"
	}
	return "+" + digits[:len(digits)-4] + "****"
}
