package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizeMobile returns the E.164 form of a mobile number, or "" when it
// cannot be parsed for the region.
func NormalizeMobile(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
