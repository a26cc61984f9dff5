package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewConfirmationCode returns a human-readable booking reference of
// the form BK-3F9A1C. Uniqueness is ultimately guaranteed by the
// database, not by this generator.
func NewConfirmationCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(hex[:6])
}
