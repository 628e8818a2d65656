package ecrecover

import (
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// TestSign_NISTVectors drives the full loop over the CAVP P-256 signing
// vectors: derive the public key from the vector's private scalar, sign the
// vector's message, then recover the key back out of the fresh signature.
func TestSign_NISTVectors(t *testing.T) {
	t.Parallel()

	vectors, err := loadSignVectors()
	require.NoError(t, err)

	for _, vector := range vectors {
		vector := vector
		t.Run(vector.Hash, func(t *testing.T) {
			t.Parallel()

			derived, err := PublicKeyFromPrivate(vector.PrivateKey, P256Params())
			require.NoError(t, err)
			assert.Equal(t, vector.PublicKey, derived, "derived key disagrees with the vector")

			digest, err := digestHexMessage(vector.Message, vector.Hash)
			require.NoError(t, err)

			sig, err := Sign(digest, vector.PrivateKey, P256Params())
			require.NoError(t, err)

			assert.Equal(t, vector.PublicKey, sig.PublicKey)
			assert.Contains(t, []int{0, 1}, sig.V)
			assert.Len(t, sig.R, 64)
			assert.Len(t, sig.S, 64)

			valid, err := Verify(digest, sig.R, sig.S, vector.PublicKey, P256Params())
			require.NoError(t, err)
			assert.True(t, valid, "fresh signature does not verify")

			recovered, err := RecoverPublicKey(digest, sig.R, sig.S, sig.V, P256Params())
			require.NoError(t, err)
			assert.Equal(t, vector.PublicKey, recovered)

			// The other selector must not yield the signing key.
			other, err := RecoverPublicKey(digest, sig.R, sig.S, 1-sig.V, P256Params())
			if err == nil {
				assert.NotEqual(t, vector.PublicKey, other)
			}
		})
	}
}

func TestSign_ShortDigestRoundTrip(t *testing.T) {
	t.Parallel()

	vectors, err := loadSignVectors()
	require.NoError(t, err)

	// An 8 byte digest is far below the curve width; it is used as is on
	// both the signing and the recovery side.
	digest := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	sig, err := Sign(digest, vectors[0].PrivateKey, P256Params())
	require.NoError(t, err)

	recovered, err := RecoverPublicKey(digest, sig.R, sig.S, sig.V, P256Params())
	require.NoError(t, err)
	assert.Equal(t, sig.PublicKey, recovered)
}

func TestSign_InvalidPrivateKeys(t *testing.T) {
	t.Parallel()

	digest := sha256.Sum256([]byte("test message"))
	order := P256Params().Curve.Params().N

	for _, privateKey := range []string{
		"",
		"not hex",
		"00",
		order.Text(16),
	} {
		_, err := Sign(digest[:], privateKey, P256Params())
		assert.Error(t, err, "private key %q", privateKey)
	}
}

func TestSign_OtherNISTCurves(t *testing.T) {
	t.Parallel()

	digest384 := sha512.Sum384([]byte("recovery on P-384"))
	digest521 := sha512.Sum512([]byte("recovery on P-521"))

	cases := []struct {
		name   string
		params *CurveParameters
		digest []byte
	}{
		{"P-384", P384Params(), digest384[:]},
		{"P-521", P521Params(), digest521[:]},
	}

	// A fixed scalar keeps the signing key deterministic; the signature
	// itself is still randomized per run.
	privateKey := "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			sig, err := Sign(c.digest, privateKey, c.params)
			require.NoError(t, err)

			assert.Len(t, sig.R, 2*c.params.ByteLength)
			assert.Len(t, sig.S, 2*c.params.ByteLength)

			recovered, err := RecoverPublicKey(c.digest, sig.R, sig.S, sig.V, c.params)
			require.NoError(t, err)
			assert.Equal(t, sig.PublicKey, recovered)
			assert.Len(t, recovered, 4*c.params.ByteLength)

			valid, err := Verify(c.digest, sig.R, sig.S, recovered, c.params)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

// TestSign_Secp256k1AgainstBtcec checks both directions against the btcec
// implementation: signatures it makes are recovered here, and signatures
// made here are recovered by it.
func TestSign_Secp256k1AgainstBtcec(t *testing.T) {
	t.Parallel()

	params := Secp256k1Params()
	digest := sha256.Sum256([]byte("cross validation message"))

	btcPriv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	expected := hexutil.Encode(btcPriv.PubKey().SerializeUncompressed()[1:])

	// btcec to us: its compact format is [v+27 | r | s].
	compact, err := btcecdsa.SignCompact(btcPriv, digest[:], false)
	require.NoError(t, err)
	require.Len(t, compact, 65)

	selector := int(compact[0]) - 27
	sigR := hexutil.Encode(compact[1:33])
	sigS := hexutil.Encode(compact[33:65])

	recovered, err := RecoverPublicKey(digest[:], sigR, sigS, selector, params)
	require.NoError(t, err)
	assert.Equal(t, expected, recovered)

	// The Ethereum style alias selects the same key.
	aliased, err := RecoverPublicKey(digest[:], sigR, sigS, selector+27, params)
	require.NoError(t, err)
	assert.Equal(t, expected, aliased)

	// Us to btcec: rebuild the compact form from our signature and let
	// btcec recover the key.
	ours, err := Sign(digest[:], hexutil.Encode(btcPriv.Serialize()), params)
	require.NoError(t, err)
	assert.Equal(t, expected, ours.PublicKey)

	btcsig := make([]byte, 65)
	btcsig[0] = byte(ours.V + 27)
	copy(btcsig[1:33], hexutil.MustDecode(ours.R))
	copy(btcsig[33:65], hexutil.MustDecode(ours.S))

	theirPub, compressed, err := btcecdsa.RecoverCompact(btcsig, digest[:])
	require.NoError(t, err)
	assert.False(t, compressed)
	assert.Equal(t, expected, hexutil.Encode(theirPub.SerializeUncompressed()[1:]))
}

func TestFindRecoveryID(t *testing.T) {
	t.Parallel()

	vector := recoveryVectors[0]
	digest := vectorDigest(t, vector.digest, vector.message)

	id, err := FindRecoveryID(digest, vector.sigR, vector.sigS, vector.publicKey, P256Params())
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, id)

	recovered, err := RecoverPublicKey(digest, vector.sigR, vector.sigS, id, P256Params())
	require.NoError(t, err)
	assert.Equal(t, vector.publicKey, recovered)
}

func TestFindRecoveryID_WrongKey(t *testing.T) {
	t.Parallel()

	vector := recoveryVectors[0]
	other := recoveryVectors[2]
	digest := vectorDigest(t, vector.digest, vector.message)

	// A valid key that did not make this signature matches neither selector.
	_, err := FindRecoveryID(digest, vector.sigR, vector.sigS, other.publicKey, P256Params())
	assert.Error(t, err)

	_, err = FindRecoveryID(digest, vector.sigR, vector.sigS, "beef", P256Params())
	assert.Error(t, err, "malformed expected key")
}
