package alert

import (
	"crypto/md5" //nolint:gosec // MD5 only fingerprints notices, matching existing alert UIDs.
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest fingerprints notice text into a stable identifier.
type Digest interface {
	// Sum returns the hex-encoded digest of data.
	Sum(data []byte) string
}

// md5Digest implements MD5 fingerprinting.
// Use for grouping alerts only, NOT for integrity.
type md5Digest struct{}

// MD5 returns an MD5 digest. The result is a hex-encoded 32-character string.
// This is the default, so identifiers line up with other alerting systems
// that group on the same text.
func MD5() Digest {
	return md5Digest{}
}

func (md5Digest) Sum(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// sha256Digest implements SHA-256 fingerprinting.
type sha256Digest struct{}

// SHA256 returns a SHA-256 digest.
// The result is a hex-encoded 64-character string.
func SHA256() Digest {
	return sha256Digest{}
}

func (sha256Digest) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// blake2bDigest implements BLAKE2b-256 fingerprinting.
type blake2bDigest struct{}

// BLAKE2b returns a BLAKE2b-256 digest.
// The result is a hex-encoded 64-character string.
func BLAKE2b() Digest {
	return blake2bDigest{}
}

func (blake2bDigest) Sum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
