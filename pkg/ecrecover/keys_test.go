package ecrecover

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublicKey(t *testing.T) {
	t.Parallel()

	vector := recoveryVectors[2]

	x, y, err := ParsePublicKey(vector.publicKey, P256Params())
	require.NoError(t, err)
	assert.Equal(t, vector.publicKey[:64], x.Text(16))
	assert.True(t, P256Params().Curve.IsOnCurve(x, y))

	// Accepted spellings: 0x prefix, uppercase, SEC 1 uncompressed prefix.
	for _, spelling := range []string{
		"0x" + vector.publicKey,
		strings.ToUpper(vector.publicKey),
		"04" + vector.publicKey,
	} {
		sx, sy, err := ParsePublicKey(spelling, P256Params())
		require.NoError(t, err, "spelling %q", spelling[:8])
		assert.Zero(t, x.Cmp(sx))
		assert.Zero(t, y.Cmp(sy))
	}
}

func TestParsePublicKey_Errors(t *testing.T) {
	t.Parallel()

	vector := recoveryVectors[2]
	params := P256Params()

	_, _, err := ParsePublicKey("zz", params)
	assert.Error(t, err, "not hex")

	_, _, err = ParsePublicKey(vector.publicKey[:64], params)
	assert.Error(t, err, "half a key")

	_, _, err = ParsePublicKey(vector.publicKey+"00", params)
	assert.Error(t, err, "trailing bytes")

	_, _, err = ParsePublicKey(strings.Repeat("00", 64), params)
	assert.Error(t, err, "point at infinity")

	// Bump y by one: the result shares x with a real point but cannot be on
	// the curve, because the only two points at that x are (x, y) and (x, p-y).
	x, y, err := ParsePublicKey(vector.publicKey, params)
	require.NoError(t, err)

	offCurve := fmt.Sprintf("%064x%064x", x, new(big.Int).Add(y, big.NewInt(1)))
	_, _, err = ParsePublicKey(offCurve, params)
	assert.Error(t, err, "off-curve point")
}

func TestEncodePublicKey(t *testing.T) {
	t.Parallel()

	vector := recoveryVectors[2]
	params := P256Params()

	x, y, err := ParsePublicKey(vector.publicKey, params)
	require.NoError(t, err)

	encoded, err := EncodePublicKey(x, y, params)
	require.NoError(t, err)
	assert.Equal(t, vector.publicKey, encoded)

	_, err = EncodePublicKey(new(big.Int), new(big.Int), params)
	assert.Error(t, err, "point at infinity")

	_, err = EncodePublicKey(nil, nil, params)
	assert.Error(t, err)

	_, err = EncodePublicKey(big.NewInt(1), big.NewInt(1), params)
	assert.Error(t, err, "off-curve point")
}

func TestPublicKeyFromPrivate(t *testing.T) {
	t.Parallel()

	vectors, err := loadSignVectors()
	require.NoError(t, err)

	for _, vector := range vectors {
		derived, err := PublicKeyFromPrivate(vector.PrivateKey, P256Params())
		require.NoError(t, err)
		assert.Equal(t, vector.PublicKey, derived)

		withPrefix, err := PublicKeyFromPrivate("0x"+vector.PrivateKey, P256Params())
		require.NoError(t, err)
		assert.Equal(t, derived, withPrefix)
	}
}

func TestPublicKeyFromPrivate_Errors(t *testing.T) {
	t.Parallel()

	order := P256Params().Curve.Params().N

	for _, privateKey := range []string{
		"",
		"0x",
		"nope",
		"00",
		order.Text(16),
		new(big.Int).Add(order, big.NewInt(1)).Text(16),
	} {
		_, err := PublicKeyFromPrivate(privateKey, P256Params())
		assert.Error(t, err, "private key %q", privateKey)
	}
}
