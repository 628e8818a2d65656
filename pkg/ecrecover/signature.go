package ecrecover

// UnknownRecoveryID marks a Signature whose selector was not given and must
// be found by trial against the expected public key.
const UnknownRecoveryID = -1

// Signature holds one recoverable ECDSA signature together with the digest
// it was made over.
type Signature struct {
	// Digest is the message hash, big-endian.
	Digest []byte

	// R is the signature r component as a hex string.
	R string

	// S is the signature s component as a hex string.
	S string

	// V is the recovery selector: 0, 1, 27, 28 or UnknownRecoveryID.
	V int

	// PublicKey optionally carries the expected public key in uncompressed
	// hex form. It is required when V is UnknownRecoveryID and used to set
	// RecoveryResult.Verified otherwise.
	PublicKey string
}

// RecoveryResult is the outcome of recovering one signature.
type RecoveryResult struct {
	// PublicKey is the recovered key, lowercase hex of x || y.
	PublicKey string

	// RecoveryID is the normalized selector (0 or 1) that produced PublicKey.
	RecoveryID int

	// Verified reports whether PublicKey matched the signature's expected key.
	// It is false when no expected key was given.
	Verified bool

	// Err is set when recovery failed; the other fields are then zero.
	Err error
}
