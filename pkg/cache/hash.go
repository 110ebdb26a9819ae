package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SkeletonKey builds the cache key for the skeleton of an image, derived
// from the raw image bytes.
func SkeletonKey(imageData []byte) string {
	return fmt.Sprintf("skeleton:%s", Hash(imageData))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
