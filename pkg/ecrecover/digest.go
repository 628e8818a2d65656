package ecrecover

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// DigestMessage hashes a message with the named algorithm. Supported names
// are "sha256", "sha384", "sha512" and "keccak256" (the pre-standard Keccak
// used by Ethereum), case-insensitively and with or without a dash.
func DigestMessage(message []byte, algorithm string) ([]byte, error) {
	switch strings.ReplaceAll(strings.ToLower(algorithm), "-", "") {
	case "sha256":
		digest := sha256.Sum256(message)
		return digest[:], nil
	case "sha384":
		digest := sha512.Sum384(message)
		return digest[:], nil
	case "sha512":
		digest := sha512.Sum512(message)
		return digest[:], nil
	case "keccak256":
		hasher := sha3.NewLegacyKeccak256()
		hasher.Write(message)
		return hasher.Sum(nil), nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm %q", algorithm)
	}
}
