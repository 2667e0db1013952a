package random

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random identifier for attack sessions.
func GenerateUUID() string {
	return uuid.NewString()
}
