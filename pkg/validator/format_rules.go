package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var (
	// Digits-only national or international number, as produced by the phone sanitizer.
	phoneRegex = regexp.MustCompile(`^[1-9]\d{6,14}$`)
)

// DateLayout is the calendar date format accepted by date fields.
const DateLayout = "2006-01-02"

// ValidEmail validates that a string is a valid email address using RFC 5322.
func ValidEmail(path Path, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			localPart, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || localPart == "" || strings.Contains(domain, "@") {
				return false
			}

			// Domain must contain at least one dot and cannot start/end with dot
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}

			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: NewError(path, CodeEmail, "must be a valid email address", nil),
	}
}

// ValidPhone validates a phone number of 7 to 15 digits.
func ValidPhone(path Path, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneRegex.MatchString(value)
		},
		Error: NewError(path, CodePhone, "must be a valid phone number", nil),
	}
}

// ValidDate validates a calendar date in DateLayout.
func ValidDate(path Path, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(DateLayout, value)
			return err == nil
		},
		Error: NewError(path, CodeDateFormat,
			"must be a date in YYYY-MM-DD format",
			map[string]any{"layout": DateLayout},
		),
	}
}
