package ecrecover

import (
	"math/big"
	"strings"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// RecoverPublicKey recovers the public key that produced an ECDSA signature,
// following SEC 1 v2 section 4.1.6 for prime-order (cofactor 1) curves.
//
// The digest is truncated to the curve's ByteLength before use, so callers
// may pass a hash wider than the field (for example SHA-512 with P-256).
// The recovery selector disambiguates the two candidate points sharing the
// x-coordinate r: its low bit is the parity of the y-coordinate. The Ethereum
// style aliases 27 and 28 are accepted and mean 0 and 1.
//
// Args:
//   - digest: the message hash the signature was made over
//   - sigR, sigS: the signature components as hex strings, with or without
//     a "0x" prefix, in either case
//   - recoveryID: 0, 1, 27 or 28
//   - params: the curve to recover on
//
// Returns:
//   - the public key as lowercase hex of the uncompressed point with the
//     leading format byte stripped: x || y, exactly 4*ByteLength characters
//   - an *Error carrying the ErrorKind of the failing step
func RecoverPublicKey(digest []byte, sigR, sigS string, recoveryID int, params *CurveParameters) (string, error) {
	id, err := normalizeRecoveryID(recoveryID)
	if err != nil {
		return "", err
	}

	if err := params.validate(); err != nil {
		return "", err
	}

	curve := params.Curve.Params()
	truncated := truncateDigest(digest, params.ByteLength)

	r, err := parseSignatureInt("r", sigR)
	if err != nil {
		return "", err
	}

	// R = (r, y) where y has the parity selected by the recovery id.
	rx, ry, err := decompressPoint(r, id, params)
	if err != nil {
		return "", err
	}

	// A valid candidate must have the group order: n*R = infinity.
	if ox, oy := params.Curve.ScalarMult(rx, ry, curve.N.Bytes()); !pointIsInfinity(ox, oy) {
		return "", newError(InvalidSignaturePoint, "candidate point for r=%s does not have the group order", sigR)
	}

	// e is the truncated digest read as a big-endian integer.
	e := new(big.Int).SetBytes(truncated)

	rInv := new(big.Int).ModInverse(r, curve.N)
	if rInv == nil {
		return "", newError(ModularInverseFailure, "signature r has no inverse modulo the group order")
	}

	s, err := parseSignatureInt("s", sigS)
	if err != nil {
		return "", err
	}

	// Q = r^-1 * (s*R - e*G)
	sRx, sRy := params.Curve.ScalarMult(rx, ry, new(big.Int).Mod(s, curve.N).Bytes())

	eNeg := new(big.Int).Neg(e)
	eNeg.Mod(eNeg, curve.N)
	eGx, eGy := params.Curve.ScalarBaseMult(eNeg.Bytes())

	sumX, sumY := params.Curve.Add(sRx, sRy, eGx, eGy)

	// With cofactor 1, Q = r^-1 * sum is infinity exactly when sum is.
	if pointIsInfinity(sumX, sumY) {
		return "", newError(InvalidSignaturePoint, "recovered point is at infinity")
	}

	qx, qy := params.Curve.ScalarMult(sumX, sumY, rInv.Bytes())

	return encodePoint(qx, qy, params)
}

// RecoverP256PublicKey recovers a public key on NIST P-256, the common case
// for SHA-256 based signatures. It is RecoverPublicKey with P256Params.
func RecoverP256PublicKey(digest []byte, sigR, sigS string, recoveryID int) (string, error) {
	return RecoverPublicKey(digest, sigR, sigS, recoveryID, P256Params())
}

// normalizeRecoveryID maps the accepted selector values onto {0, 1}.
func normalizeRecoveryID(recoveryID int) (int, error) {
	switch recoveryID {
	case 0, 1:
		return recoveryID, nil
	case 27, 28:
		return recoveryID - 27, nil
	default:
		return 0, newError(InvalidRecoveryID, "recovery id %d is not one of 0, 1, 27, 28", recoveryID)
	}
}

// truncateDigest keeps the leftmost byteLength bytes of the digest. Shorter
// digests are used as they are.
func truncateDigest(digest []byte, byteLength int) []byte {
	if len(digest) > byteLength {
		return digest[:byteLength]
	}

	return digest
}

// parseSignatureInt parses one signature component from its hex form.
func parseSignatureInt(name, value string) (*big.Int, error) {
	cleaned := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if cleaned == "" {
		return nil, newError(SignatureParseFailure, "signature %s is empty", name)
	}

	parsed, ok := new(big.Int).SetString(cleaned, 16)
	if !ok {
		return nil, newError(SignatureParseFailure, "signature %s is not valid hex: %q", name, value)
	}

	if parsed.Sign() < 0 {
		return nil, newError(SignatureParseFailure, "signature %s is negative: %q", name, value)
	}

	return parsed, nil
}

// decompressPoint finds the curve point with the given x-coordinate whose
// y-coordinate has the given parity, by solving y^2 = x^3 + ax + b over the
// prime field.
func decompressPoint(x *big.Int, parity int, params *CurveParameters) (*big.Int, *big.Int, error) {
	curve := params.Curve.Params()

	if x.Sign() <= 0 || x.Cmp(curve.P) >= 0 {
		return nil, nil, newError(PointDecompressionFailure, "x-coordinate %s is outside the field", x)
	}

	// ySquared = (x^2 + a)*x + b mod p
	ySquared := new(big.Int).Mul(x, x)
	ySquared.Add(ySquared, params.A)
	ySquared.Mul(ySquared, x)
	ySquared.Add(ySquared, curve.B)
	ySquared.Mod(ySquared, curve.P)

	y := new(big.Int).ModSqrt(ySquared, curve.P)
	if y == nil {
		return nil, nil, newError(PointDecompressionFailure, "no curve point has x-coordinate %s", x)
	}

	if y.Sign() == 0 {
		if parity != 0 {
			return nil, nil, newError(PointDecompressionFailure, "no curve point with odd y has x-coordinate %s", x)
		}
	} else if int(y.Bit(0)) != parity {
		y.Sub(curve.P, y)
	}

	return x, y, nil
}

// pointIsInfinity reports whether an affine result is the point at infinity,
// which the group providers return as (0, 0).
func pointIsInfinity(x, y *big.Int) bool {
	return x.Sign() == 0 && y.Sign() == 0
}

// encodePoint serializes a point to the canonical public key form: lowercase
// hex of x || y with both coordinates zero padded to ByteLength bytes. This
// equals the uncompressed SEC 1 encoding with the leading 0x04 byte stripped.
func encodePoint(x, y *big.Int, params *CurveParameters) (string, error) {
	xHex, err := hexutil.EncodeBigFixed(x, params.ByteLength)
	if err != nil {
		return "", newError(EncodingFailure, "cannot encode x-coordinate: %v", err)
	}

	yHex, err := hexutil.EncodeBigFixed(y, params.ByteLength)
	if err != nil {
		return "", newError(EncodingFailure, "cannot encode y-coordinate: %v", err)
	}

	return xHex + yHex, nil
}
