package export

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// HashAlgorithm identifies the hashing algorithm used for fingerprints.
const HashAlgorithm = "SHA-256"

// Fingerprint hashes the canonical form of doc's command list. Identical
// inputs produce identical fingerprints regardless of the output surface.
func Fingerprint(doc *report.Document) string {
	hasher := sha256.New()
	for _, c := range doc.Commands {
		hasher.Write([]byte(draw.Describe(c)))
		hasher.Write([]byte{'\n'})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// ShortFingerprint returns the first 8 characters of a fingerprint for
// display.
func ShortFingerprint(fp string) string {
	if len(fp) >= 8 {
		return fp[:8]
	}
	return fp
}
