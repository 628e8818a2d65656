package ecrecover

import (
	"encoding/json"
	"os"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// signVector is one NIST P-256 signing vector: a message to hash, the
// signing key and its known public key.
type signVector struct {
	Hash       string `json:"hash"`
	Message    string `json:"message"`
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// loadSignVectors reads the P-256 signing vectors from
// fixtures/p256_sign_vectors.json.
func loadSignVectors() ([]signVector, error) {
	file, err := os.Open("../../fixtures/p256_sign_vectors.json")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var vectors []signVector
	if err := json.NewDecoder(file).Decode(&vectors); err != nil {
		return nil, err
	}

	return vectors, nil
}

// digestHexMessage decodes a hex-encoded message and hashes it with the
// named algorithm.
func digestHexMessage(messageHex, algorithm string) ([]byte, error) {
	message, err := hexutil.Decode(messageHex)
	if err != nil {
		return nil, err
	}

	return DigestMessage(message, algorithm)
}
