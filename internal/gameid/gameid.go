// Package gameid generates identifiers for games. IDs are UUIDv7 values
// rendered as 26 lowercase Crockford base32 characters, so they sort by
// creation time.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generate returns a new game ID using crypto/rand.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return encode(id)
}

// GenerateFrom returns a new game ID whose random bits are read from r.
// Tests pass a seeded reader to get stable random bits.
func GenerateFrom(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate game id: %w", err)
	}
	return encode(id), nil
}

func encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Validate checks that id is a well-formed game ID.
func Validate(id string) error {
	if len(id) != length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	b, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("invalid game ID: %w", err)
	}
	if v := b[6] >> 4; v != 7 {
		return fmt.Errorf("game ID is not a version 7 UUID (version %d)", v)
	}
	return nil
}
