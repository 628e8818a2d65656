// Package hexutil collects the hex conversions shared by the recovery
// library, the CLI and the examples.
package hexutil

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Decode converts a hex string to a byte slice. An optional "0x" prefix is
// tolerated and odd-length input is left-padded with a zero nibble.
func Decode(str string) ([]byte, error) {
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	if len(str)%2 != 0 {
		str = "0" + str
	}

	return hex.DecodeString(str)
}

// MustDecode type-checks and converts a hex string to a byte slice.
func MustDecode(str string) []byte {
	buf, err := Decode(str)
	if err != nil {
		panic(fmt.Errorf("could not decode hex: %w", err))
	}

	return buf
}

// Encode generates a lowercase hex string from the byte representation,
// without a "0x" prefix.
func Encode(buf []byte) string {
	return hex.EncodeToString(buf)
}

// EncodeBigFixed encodes a non-negative integer as lowercase hex, zero padded
// on the left to exactly byteLen bytes (2*byteLen hex characters).
func EncodeBigFixed(n *big.Int, byteLen int) (string, error) {
	if n.Sign() < 0 {
		return "", fmt.Errorf("cannot encode negative integer %s", n)
	}

	if (n.BitLen()+7)/8 > byteLen {
		return "", fmt.Errorf("integer needs %d bytes, want at most %d", (n.BitLen()+7)/8, byteLen)
	}

	buf := make([]byte, byteLen)
	n.FillBytes(buf)

	return hex.EncodeToString(buf), nil
}
