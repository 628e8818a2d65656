// Package ecrecover recovers ECDSA public keys from signatures, following
// SEC 1 version 2, section 4.1.6, restricted to prime-order curves.
//
// Given a message digest, the signature components r and s and a one-bit
// recovery selector, the package reconstructs the public key that made the
// signature. NIST P-256, P-384 and P-521 and the Bitcoin curve secp256k1 are
// built in; any other cofactor-1 short-Weierstrass curve can be described
// with CurveParameters.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-recovery/pkg/ecrecover"
//
//	digest, _ := ecrecover.DigestMessage([]byte("hello world"), "sha256")
//
//	publicKey, err := ecrecover.RecoverP256PublicKey(digest, rHex, sHex, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Recovered key: %s\n", publicKey)
//
// The recovered key is the uncompressed point with the leading format byte
// stripped: lowercase hex of x || y.
//
// # Batch Recovery
//
// The Client recovers whole signature files, resolving unknown selectors
// against each record's expected public key:
//
//	client := ecrecover.NewClient().
//	    WithCurve(ecrecover.Secp256k1Params()).
//	    WithWorkers(8)
//
//	results, err := client.RecoverFile(ctx, "signatures.json")
//
// # Error Handling
//
// Failures carry an ErrorKind naming the pipeline step that rejected the
// input, so callers can branch without matching message text:
//
//	if ecrecover.KindOf(err) == ecrecover.PointDecompressionFailure {
//	    // r is not the x-coordinate of any curve point
//	}
package ecrecover
