package util

import (
	"github.com/google/uuid"
)

const uuidV7Attempts = 3

// NewUUID returns a time-ordered v7 UUID, or a random v4 one if the v7
// generator keeps failing.
func NewUUID() string {
	for range uuidV7Attempts {
		if id, err := uuid.NewV7(); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}
