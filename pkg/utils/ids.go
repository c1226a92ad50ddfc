package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewID generates a nanoid for slots and log entries. The scheduler takes an
// id function as input, so tests can swap this for a deterministic sequence.
func NewID() string {
	return gonanoid.Must()
}

func GenerateRandomKey(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
