package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TicketNoPrefix is prepended to every generated ticket number.
const TicketNoPrefix = "TKT-"

// NewTicketNo generates a human-facing ticket number of the form
// "TKT-xxxxxxxx" where the suffix is the first eight hex characters of
// a random UUID.  Uniqueness is ultimately enforced by the UNIQUE
// constraint on tickets.ticket_no; a collision surfaces as a conflict
// on insert rather than a silent overwrite.
func NewTicketNo() string {
	return TicketNoPrefix + uuid.NewString()[:8]
}

// IsTicketNo reports whether s looks like a generated ticket number:
// the TKT- prefix followed by exactly eight lowercase hex characters.
func IsTicketNo(s string) bool {
	if !strings.HasPrefix(s, TicketNoPrefix) {
		return false
	}
	suffix := s[len(TicketNoPrefix):]
	if len(suffix) != 8 {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
