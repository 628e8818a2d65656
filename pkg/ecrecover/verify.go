package ecrecover

import (
	"crypto/ecdsa"
	"fmt"
)

// Verify reports whether (sigR, sigS) is a valid ECDSA signature over digest
// for the given public key. The digest is truncated to the curve's
// ByteLength first, matching Sign and RecoverPublicKey.
//
// A well-formed but non-matching signature yields (false, nil); an error is
// returned only when the inputs cannot be parsed at all.
func Verify(digest []byte, sigR, sigS, publicKey string, params *CurveParameters) (bool, error) {
	x, y, err := ParsePublicKey(publicKey, params)
	if err != nil {
		return false, fmt.Errorf("invalid public key: %w", err)
	}

	r, err := parseSignatureInt("r", sigR)
	if err != nil {
		return false, err
	}

	s, err := parseSignatureInt("s", sigS)
	if err != nil {
		return false, err
	}

	pub := &ecdsa.PublicKey{Curve: params.Curve, X: x, Y: y}
	truncated := truncateDigest(digest, params.ByteLength)

	return ecdsa.Verify(pub, truncated, r, s), nil
}
