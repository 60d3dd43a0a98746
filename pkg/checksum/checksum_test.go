package checksum_test

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasmregistry/codemap/pkg/checksum"
	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
)

var hexUpper64 = regexp.MustCompile(`^[A-F0-9]{64}$`)

func upperSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromBase64(t *testing.T) {
	wasm := []byte("\x00asm\x01\x00\x00\x00 pretend wasm module body")

	t.Run("plain payload hashes raw bytes", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString(wasm)

		got, err := checksum.FromBase64(payload)
		require.NoError(t, err)
		assert.Equal(t, upperSHA256(wasm), got)
		assert.Regexp(t, hexUpper64, got)
	})

	t.Run("gzip payload hashes decompressed bytes", func(t *testing.T) {
		compressed := gzipBytes(t, wasm)
		payload := base64.StdEncoding.EncodeToString(compressed)

		got, err := checksum.FromBase64(payload)
		require.NoError(t, err)
		assert.Equal(t, upperSHA256(wasm), got)
		assert.NotEqual(t, upperSHA256(compressed), got)
	})

	t.Run("deterministic", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString(wasm)

		first, err := checksum.FromBase64(payload)
		require.NoError(t, err)
		second, err := checksum.FromBase64(payload)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("malformed base64 yields hash error", func(t *testing.T) {
		got, err := checksum.FromBase64("!!! not base64 !!!")
		assert.Empty(t, got)
		require.Error(t, err)

		var hashErr *pkgerrors.HashError
		assert.ErrorAs(t, err, &hashErr)
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("empty payload hashes empty bytes", func(t *testing.T) {
		got, err := checksum.FromBase64("")
		require.NoError(t, err)
		assert.Equal(t, upperSHA256(nil), got)
	})
}

func TestFromBytes(t *testing.T) {
	wasm := []byte("contract body")

	t.Run("raw bytes", func(t *testing.T) {
		assert.Equal(t, upperSHA256(wasm), checksum.FromBytes(wasm))
	})

	t.Run("gzip framing is unwrapped", func(t *testing.T) {
		compressed := gzipBytes(t, wasm)
		assert.Equal(t, upperSHA256(wasm), checksum.FromBytes(compressed))
	})

	t.Run("corrupt gzip body falls back to raw bytes", func(t *testing.T) {
		compressed := gzipBytes(t, bytes.Repeat(wasm, 8))
		truncated := compressed[:12] // keeps the 10-byte header, loses the body

		assert.Equal(t, upperSHA256(truncated), checksum.FromBytes(truncated))
	})
}

func TestNormalizeAndEqual(t *testing.T) {
	upper := upperSHA256([]byte("x"))
	lower := strings.ToLower(upper)

	assert.Equal(t, upper, checksum.Normalize(lower))
	assert.True(t, checksum.Equal(upper, lower))
	assert.True(t, checksum.Equal(lower, lower))
	assert.False(t, checksum.Equal(upper, upperSHA256([]byte("y"))))
}
