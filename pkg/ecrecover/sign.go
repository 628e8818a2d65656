package ecrecover

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// Sign produces a recoverable ECDSA signature over digest with the given
// private key. The digest is truncated to the curve's ByteLength the same
// way recovery truncates it, so the two sides always agree on the value
// being signed.
//
// The recovery selector is found by trial: the signature is recovered with
// both candidate selectors and the one yielding the signer's own public key
// wins. Exactly one of them does for a valid signature.
//
// Args:
//   - digest: the message hash to sign
//   - privateKey: the private scalar as a hex string
//   - params: the curve to sign on
//
// Returns:
//   - the signature with R and S zero padded to the curve width, V set to
//     the normalized selector and PublicKey set to the signer's public key
func Sign(digest []byte, privateKey string, params *CurveParameters) (*Signature, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	d, err := parsePrivateScalar(privateKey, params)
	if err != nil {
		return nil, err
	}

	pubX, pubY := params.Curve.ScalarBaseMult(d.Bytes())
	signer := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: params.Curve, X: pubX, Y: pubY},
		D:         d,
	}

	truncated := truncateDigest(digest, params.ByteLength)

	r, s, err := ecdsa.Sign(rand.Reader, signer, truncated)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}

	rHex, err := hexutil.EncodeBigFixed(r, params.ByteLength)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signature r: %w", err)
	}

	sHex, err := hexutil.EncodeBigFixed(s, params.ByteLength)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signature s: %w", err)
	}

	publicKey, err := encodePoint(pubX, pubY, params)
	if err != nil {
		return nil, err
	}

	recoveryID, err := FindRecoveryID(truncated, rHex, sHex, publicKey, params)
	if err != nil {
		return nil, fmt.Errorf("could not determine the recovery id: %w", err)
	}

	return &Signature{
		Digest:    digest,
		R:         rHex,
		S:         sHex,
		V:         recoveryID,
		PublicKey: publicKey,
	}, nil
}

// FindRecoveryID returns the selector in {0, 1} for which recovering the
// signature yields the given public key.
func FindRecoveryID(digest []byte, sigR, sigS, publicKey string, params *CurveParameters) (int, error) {
	expected, err := normalizePublicKey(publicKey, params)
	if err != nil {
		return 0, fmt.Errorf("invalid expected public key: %w", err)
	}

	for _, id := range []int{0, 1} {
		recovered, err := RecoverPublicKey(digest, sigR, sigS, id, params)
		if err != nil {
			continue
		}

		if recovered == expected {
			return id, nil
		}
	}

	return 0, fmt.Errorf("no recovery id in {0, 1} yields the public key %s", expected)
}
