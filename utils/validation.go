package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	clockRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
	digitsRegex   = regexp.MustCompile(`\d+`)
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
	}
}

// IsClockTime reports whether s is a wall-clock time such as "06:00".
func IsClockTime(s string) bool {
	return clockRegex.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ValidateUsername checks the username charset and length.
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword enforces a minimum length of 8 with at least one letter and
// one digit.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		}
	}
	return letter && digit
}

// ParseLooseID accepts numeric ids as well as display ids such as "#BK101"
// and returns the digits they carry.
func ParseLooseID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != float64(uint(id)) {
			return 0, false
		}
		return uint(id), true
	case string:
		digits := strings.Join(digitsRegex.FindAllString(id, -1), "")
		if digits == "" {
			return 0, false
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}
