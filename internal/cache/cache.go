// Package cache stores wire-format parse results keyed by request
// identity, so repeated inputs skip the engine entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from the parts that define a parse:
// input text, locale, reference time, targets and flags. Parts are
// NUL-joined before hashing so shifting a boundary always changes the
// key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "duckling:v1:" + hex.EncodeToString(h.Sum(nil))
}
