package validator

import (
	"github.com/google/uuid"
)

// ValidUUID accepts the canonical 36-character form only. uuid.Parse on its
// own also takes braces, the urn:uuid: prefix and bare hex.
func ValidUUID(path Path, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: NewError(path, CodeUUID, "must be a valid UUID", nil),
	}
}
