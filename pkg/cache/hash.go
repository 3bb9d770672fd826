package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a "prefix:sha256(parts)" key. The full 64-character
// digest is kept so that distinct listings and render options can never
// collide.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	digest := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(digest[:]))
}

// Hash returns the hex SHA-256 digest of data. Used to identify one
// generation of a rendered graph.
func Hash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
