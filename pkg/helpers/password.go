package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Fixed per deployment; tuned for interactive logins.
const (
	argonMemory      uint32 = 64 * 1024 // KiB
	argonTime        uint32 = 1
	argonParallelism uint8  = 4
	argonSaltLength  uint32 = 16
	argonKeyLength   uint32 = 32
)

var errMalformedDigest = errors.New("malformed password digest")

// HashPassword hashes the plain text password with argon2id and returns a
// self-contained PHC-format digest ($argon2id$v=19$m=...,t=...,p=...$salt$key).
// A fresh random salt makes every digest unique, even for equal inputs.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether plain matches the digest, recomputing the
// key with the parameters embedded in the digest and comparing in constant
// time. Malformed digests verify false rather than erroring out.
func VerifyPassword(digest, plain string) bool {
	memory, timeCost, parallelism, salt, key, err := parseDigest(digest)
	if err != nil {
		return false
	}
	computed := argon2.IDKey([]byte(plain), salt, timeCost, memory, parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1
}

func parseDigest(digest string) (memory, timeCost uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}

	var p uint32
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &p); err != nil {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}
	if memory == 0 || timeCost == 0 || p == 0 || p > 255 {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}
	parallelism = uint8(p)

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return 0, 0, 0, nil, nil, errMalformedDigest
	}
	return memory, timeCost, parallelism, salt, key, nil
}
