package recorder

import (
	"crypto/sha256"
	"encoding/hex"

	"mercator-hq/tabula/pkg/table"
)

// HashContent computes the SHA-256 hash of content and returns it hex-encoded.
// Returns an empty string if content is empty.
func HashContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Verify reports whether doc's data still matches its recorded size and digest.
func Verify(doc *table.Document) bool {
	return int64(len(doc.Data)) == doc.Size && HashContent(doc.Data) == doc.SHA256
}
