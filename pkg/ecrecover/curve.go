package ecrecover

import (
	"crypto/elliptic"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// CurveParameters describes a short-Weierstrass curve y^2 = x^3 + ax + b for
// key recovery. The prime modulus, group order, coefficient b and base point
// come from Curve.Params(); the coefficient a is carried here because the
// standard library parameter block leaves it implicit.
type CurveParameters struct {
	// Name identifies the curve in error messages and CLI flags.
	Name string

	// Curve is the group provider used for all point arithmetic.
	Curve elliptic.Curve

	// A is the coefficient a of the curve equation. The NIST curves use -3,
	// secp256k1 uses 0. Negative values are reduced modulo p as needed.
	A *big.Int

	// ByteLength is the canonical width of one field element: coordinates are
	// encoded as exactly ByteLength bytes and digests are truncated to it.
	ByteLength int

	// Cofactor of the curve group. Recovery is only defined here for
	// prime-order groups, so every value other than 1 is rejected.
	Cofactor int
}

// P256Params returns the recovery parameters for NIST P-256 (secp256r1).
func P256Params() *CurveParameters {
	return &CurveParameters{
		Name:       "P-256",
		Curve:      elliptic.P256(),
		A:          big.NewInt(-3),
		ByteLength: 32,
		Cofactor:   1,
	}
}

// P384Params returns the recovery parameters for NIST P-384 (secp384r1).
func P384Params() *CurveParameters {
	return &CurveParameters{
		Name:       "P-384",
		Curve:      elliptic.P384(),
		A:          big.NewInt(-3),
		ByteLength: 48,
		Cofactor:   1,
	}
}

// P521Params returns the recovery parameters for NIST P-521 (secp521r1).
func P521Params() *CurveParameters {
	return &CurveParameters{
		Name:       "P-521",
		Curve:      elliptic.P521(),
		A:          big.NewInt(-3),
		ByteLength: 66,
		Cofactor:   1,
	}
}

// Secp256k1Params returns the recovery parameters for the Bitcoin and
// Ethereum curve secp256k1.
func Secp256k1Params() *CurveParameters {
	return &CurveParameters{
		Name:       "secp256k1",
		Curve:      secp256k1.S256(),
		A:          new(big.Int),
		ByteLength: 32,
		Cofactor:   1,
	}
}

// CurveByName resolves a curve name to its recovery parameters. Recognized
// names are "P-256", "P-384", "P-521" and "secp256k1", case-insensitively and
// with the usual aliases (p256, prime256v1, secp256r1, ...).
func CurveByName(name string) (*CurveParameters, error) {
	switch strings.ToLower(name) {
	case "p-256", "p256", "prime256v1", "secp256r1":
		return P256Params(), nil
	case "p-384", "p384", "secp384r1":
		return P384Params(), nil
	case "p-521", "p521", "secp521r1":
		return P521Params(), nil
	case "secp256k1":
		return Secp256k1Params(), nil
	default:
		return nil, newError(CurveSetupFailure, "unsupported curve %q", name)
	}
}

// validate checks that the parameter block is complete enough to run the
// recovery pipeline against it.
func (p *CurveParameters) validate() error {
	if p == nil {
		return newError(CurveSetupFailure, "curve parameters are nil")
	}

	if p.Curve == nil {
		return newError(CurveSetupFailure, "curve %q has no group provider", p.Name)
	}

	if p.A == nil {
		return newError(CurveSetupFailure, "curve %q has no coefficient a", p.Name)
	}

	if p.Cofactor != 1 {
		return newError(CurveSetupFailure, "curve %q has cofactor %d, recovery needs a prime-order group", p.Name, p.Cofactor)
	}

	fieldBytes := (p.Curve.Params().BitSize + 7) / 8
	if p.ByteLength < fieldBytes {
		return newError(CurveSetupFailure, "curve %q byte length %d cannot hold a %d-bit field element", p.Name, p.ByteLength, p.Curve.Params().BitSize)
	}

	return nil
}
