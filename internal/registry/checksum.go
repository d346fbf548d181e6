package registry

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// DigestPrefix identifies the digest algorithm in transmitted
// checksums, so the server can support multiple schemes without
// ambiguity.
const DigestPrefix = "sha512:"

// Digest computes the SHA-512 digest of r and returns it as a
// lowercase hex string with the algorithm prefix.
func Digest(r io.Reader) (string, error) {
	h := sha512.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("computing digest: %w", err)
	}
	return DigestPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

// DigestBytes computes the SHA-512 digest of b. Identical bytes always
// yield the identical digest string.
func DigestBytes(b []byte) string {
	sum := sha512.Sum512(b)
	return DigestPrefix + hex.EncodeToString(sum[:])
}

// DigestFile computes the SHA-512 digest of the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()
	return Digest(f)
}
