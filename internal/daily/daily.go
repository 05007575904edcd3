// Package daily derives the shared "word of the day".
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

// WordIndex returns a deterministic index for a date using a BLAKE2b MAC
// keyed by salt over the date key, reduced modulo n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		k := blake2b.Sum256(key)
		key = k[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// only reachable for keys over 64 bytes, which are hashed above
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
