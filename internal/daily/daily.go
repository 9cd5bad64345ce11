// Package daily picks the shared target word for a calendar day.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using a keyed
// BLAKE2b-256 of YYYY-MM-DD, modulo answersLen. The salt keeps the sequence
// unpredictable to players; it is hashed down to a valid key first.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	key := blake2b.Sum256([]byte(salt))
	h, err := blake2b.New256(key[:])
	if err != nil {
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}
