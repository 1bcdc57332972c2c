package uid

import "github.com/google/uuid"

// GenerateSessionID returns a random id used to correlate the log lines of one game.
func GenerateSessionID() string {
	return uuid.NewString()
}
