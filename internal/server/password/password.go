// Package password hashes and verifies user credentials.
//
// New digests are argon2id in PHC string format. Verification also accepts
// the legacy scheme (a bare hex-encoded SHA-256 of the password) so that
// credentials imported from the previous deployment keep working; nothing
// ever writes the legacy form.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16

	phcPrefix = "$argon2id$"
)

// Hash derives an argon2id digest of the password and encodes it as a PHC
// string: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		phcPrefix, argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether candidate matches the stored digest. Comparison
// is constant-time over the derived keys.
func Verify(stored, candidate string) bool {
	if strings.HasPrefix(stored, phcPrefix) {
		return verifyArgon2id(stored, candidate)
	}
	return verifyLegacySHA256(stored, candidate)
}

func verifyArgon2id(stored, candidate string) bool {
	// $argon2id$v=19$m=...,t=...,p=...$salt$hash
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false
	}
	if memory == 0 || timeCost == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(candidate), salt, timeCost, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func verifyLegacySHA256(stored, candidate string) bool {
	want, err := hex.DecodeString(stored)
	if err != nil || len(want) != sha256.Size {
		return false
	}
	got := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(got[:], want) == 1
}
