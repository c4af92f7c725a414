package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainReport separates report fingerprints from other hashes.
const DomainReport = "socperf/report/v1"

// Fingerprint is a content hash of a value's canonical JSON.
//
// Format: "sha256:" + hex(SHA256(domain + 0x00 + canonical)).
func Fingerprint(v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainReport))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
