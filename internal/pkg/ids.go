package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a unique identifier for a session.
func GenerateGameID() string {
	return uuid.NewString()
}
