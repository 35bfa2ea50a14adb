package tool

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

func GenerateRandomUUID() string {
	return uuid.New().String()
}

// GenerateShortID returns a short hex id for dialog and sheet sessions, which
// end up in URLs typed or scanned by users.
func GenerateShortID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return GenerateRandomUUID()[:12]
	}
	return hex.EncodeToString(b)
}
