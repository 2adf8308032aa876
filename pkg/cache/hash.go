package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VersionKey generates the cache key for raw tree-data text of a version.
// The key format is: tree:<version>:<hash of source URL>.
// Including the source URL keeps entries from different mirrors separate.
func VersionKey(version, sourceURL string) string {
	return fmt.Sprintf("tree:%s:%s", version, Hash([]byte(sourceURL))[:16])
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
