package sms

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone converts a raw phone string into the digit-only international
// format Termii expects (no leading '+', e.g. "2349118462627"). Stray '+',
// spaces, dashes, and parentheses are stripped before any other logic runs.
//
// When defaultCountryCode is non-empty and the cleaned number does not already
// start with it, leading zeros are dropped and the country code is prepended.
// The result is best-effort for the gateway: no numbering-plan length check,
// no validation beyond rejecting inputs with zero digits.
func FormatPhone(raw, defaultCountryCode string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPhone)
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", fmt.Errorf("%w: no digits in %q", ErrInvalidPhone, raw)
	}

	if defaultCountryCode != "" && !strings.HasPrefix(digits, defaultCountryCode) {
		digits = defaultCountryCode + strings.TrimLeft(digits, "0")
	}

	return digits, nil
}

// PhoneCountry returns the ISO 3166-1 alpha-2 region for a digit-only
// international number, or "" if it cannot be parsed. Used only to enrich
// logs; delivery never depends on it.
func PhoneCountry(phone string) string {
	if phone == "" {
		return ""
	}
	num, err := phonenumbers.Parse("+"+strings.TrimPrefix(phone, "+"), "")
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(num)
}
