package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateCycleID creates a short, human-readable ID for one engine tick.
// Format: cycle-{tick}-{8charHexUUID}, e.g. "cycle-42-a3f8e2b1".
func GenerateCycleID(tick int64) string {
	return fmt.Sprintf("cycle-%d-%s", tick, generateShortUUID())
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
