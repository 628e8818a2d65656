package ecrecover

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// ParsePublicKey converts a public key from its hex form to curve
// coordinates. Both the bare x || y form produced by this package and the
// SEC 1 uncompressed form with the leading 0x04 byte are accepted. The point
// is checked to be on the curve.
func ParsePublicKey(publicKey string, params *CurveParameters) (*big.Int, *big.Int, error) {
	if err := params.validate(); err != nil {
		return nil, nil, err
	}

	raw, err := hexutil.Decode(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode public key hex: %w", err)
	}

	coordLen := params.ByteLength
	if len(raw) == 2*coordLen+1 && raw[0] == 4 {
		raw = raw[1:]
	}

	if len(raw) != 2*coordLen {
		return nil, nil, fmt.Errorf("public key has %d bytes, want %d (x || y) or %d (uncompressed)", len(raw), 2*coordLen, 2*coordLen+1)
	}

	x := new(big.Int).SetBytes(raw[:coordLen])
	y := new(big.Int).SetBytes(raw[coordLen:])

	if pointIsInfinity(x, y) {
		return nil, nil, fmt.Errorf("public key is the point at infinity")
	}

	if !params.Curve.IsOnCurve(x, y) {
		return nil, nil, fmt.Errorf("public key point is not on curve %s", params.Name)
	}

	return x, y, nil
}

// EncodePublicKey serializes curve coordinates to the canonical public key
// form used across this package: lowercase hex of x || y without a prefix.
func EncodePublicKey(x, y *big.Int, params *CurveParameters) (string, error) {
	if err := params.validate(); err != nil {
		return "", err
	}

	if x == nil || y == nil || pointIsInfinity(x, y) {
		return "", fmt.Errorf("cannot encode the point at infinity")
	}

	if !params.Curve.IsOnCurve(x, y) {
		return "", fmt.Errorf("point is not on curve %s", params.Name)
	}

	return encodePoint(x, y, params)
}

// PublicKeyFromPrivate derives the public key for a private scalar given as
// a hex string.
func PublicKeyFromPrivate(privateKey string, params *CurveParameters) (string, error) {
	if err := params.validate(); err != nil {
		return "", err
	}

	d, err := parsePrivateScalar(privateKey, params)
	if err != nil {
		return "", err
	}

	x, y := params.Curve.ScalarBaseMult(d.Bytes())

	return encodePoint(x, y, params)
}

// normalizePublicKey reduces any accepted public key spelling to the
// canonical lowercase x || y form, so keys can be compared as strings.
func normalizePublicKey(publicKey string, params *CurveParameters) (string, error) {
	x, y, err := ParsePublicKey(publicKey, params)
	if err != nil {
		return "", err
	}

	return encodePoint(x, y, params)
}

// parsePrivateScalar parses a private key scalar and checks it is in [1, n-1].
func parsePrivateScalar(privateKey string, params *CurveParameters) (*big.Int, error) {
	cleaned := strings.TrimPrefix(strings.TrimPrefix(privateKey, "0x"), "0X")
	if cleaned == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	d, ok := new(big.Int).SetString(cleaned, 16)
	if !ok {
		return nil, fmt.Errorf("private key is not valid hex")
	}

	if d.Sign() <= 0 || d.Cmp(params.Curve.Params().N) >= 0 {
		return nil, fmt.Errorf("private key is outside [1, n-1]")
	}

	return d, nil
}
