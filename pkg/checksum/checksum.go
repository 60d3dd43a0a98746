// Package checksum derives the canonical digest used to compare registry
// hashes against on-chain data hashes and governance upload payloads.
//
// Code-upload payloads may or may not be gzip-wrapped depending on how
// they were submitted, but the canonical hash is always computed over the
// decompressed wasm bytes when compression was used. Digests are SHA-256
// rendered as 64 uppercase hex characters, matching the registry
// convention (chain endpoints serve the same digests in lowercase).
package checksum

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"

	"github.com/wasmregistry/codemap/pkg/errors"
)

// FromBase64 decodes a base64 payload and returns its canonical digest.
// A malformed payload yields a HashError; callers treat that as "no hash
// available" rather than a failure of the surrounding run.
func FromBase64(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.NewHashError("malformed base64 payload", err)
	}
	return FromBytes(raw), nil
}

// FromBytes returns the canonical digest of raw. When raw is a gzip
// stream the digest covers the decompressed bytes; otherwise it covers
// raw itself.
func FromBytes(raw []byte) string {
	if decompressed, err := gunzip(raw); err == nil {
		raw = decompressed
	}
	sum := sha256.Sum256(raw)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Normalize uppercases a hex digest so registry and chain spellings of
// the same digest compare equal.
func Normalize(hash string) string {
	return strings.ToUpper(hash)
}

// Equal reports whether two hex digests denote the same bytes,
// ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// gunzip decompresses raw when it carries gzip framing. Any failure,
// including a corrupt body after a valid header, is reported so the
// caller can fall back to the raw bytes.
func gunzip(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}
