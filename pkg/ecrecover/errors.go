package ecrecover

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recovery failures so callers can branch on the failing
// step without parsing message text.
type ErrorKind int

const (
	// KindUnknown is returned by KindOf for errors this package did not produce.
	KindUnknown ErrorKind = iota

	// InvalidRecoveryID means the recovery selector was not 0, 1, 27 or 28.
	InvalidRecoveryID

	// CurveSetupFailure means the curve parameters were missing, malformed or
	// describe a group this package does not support.
	CurveSetupFailure

	// SignatureParseFailure means the r or s component was not a valid
	// non-negative hexadecimal integer.
	SignatureParseFailure

	// PointDecompressionFailure means no curve point exists with the signature's
	// r value as x-coordinate and the selector's y-parity.
	PointDecompressionFailure

	// InvalidSignaturePoint means a candidate point failed a group check: the
	// decompressed point does not have the group order, or the recovered public
	// key came out as the point at infinity.
	InvalidSignaturePoint

	// ModularInverseFailure means r has no inverse modulo the group order.
	ModularInverseFailure

	// EncodingFailure means the recovered point could not be serialized to the
	// fixed-width uncompressed form.
	EncodingFailure
)

// String returns the human-readable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidRecoveryID:
		return "invalid recovery id"
	case CurveSetupFailure:
		return "curve setup failure"
	case SignatureParseFailure:
		return "signature parse failure"
	case PointDecompressionFailure:
		return "point decompression failure"
	case InvalidSignaturePoint:
		return "invalid signature point"
	case ModularInverseFailure:
		return "modular inverse failure"
	case EncodingFailure:
		return "encoding failure"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the recovery operations. It carries the
// machine-checkable Kind alongside a message naming the step that failed.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the ErrorKind from err. It returns KindUnknown when err was
// not produced by this package.
func KindOf(err error) ErrorKind {
	var recErr *Error
	if errors.As(err, &recErr) {
		return recErr.Kind
	}

	return KindUnknown
}
