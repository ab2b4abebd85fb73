// Package cache memoizes generated letters inside a process. A
// re-run over the same documents reuses letters instead of re-billing
// the generator API. Nothing here persists across processes; run
// state is intentionally ephemeral.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the slice of caching the letter pipeline needs: store a
// generated letter under its prompt key, look it up on the next run.
// Entries expire by TTL; nothing ever needs explicit invalidation.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// LetterKey derives a cache key from the exact generation prompt.
// Keying on the prompt rather than the claim number means any change
// to the claim's inputs produces a fresh letter.
func LetterKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "appealgen:letter:v1:" + hex.EncodeToString(hash[:])
}
