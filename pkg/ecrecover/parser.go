package ecrecover

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
)

// SignatureParser loads recoverable signatures from a file.
type SignatureParser interface {
	ParseSignatures(filePath string) ([]*Signature, error)
}

// JSONParser reads signatures from a JSON array of objects. Each record
// carries the signature components plus either the digest as hex or the raw
// message, which is then hashed with HashAlgorithm:
//
//	[{"digest": "9340...", "r": "6c3d...", "s": "7beb...", "v": 0},
//	 {"message": "hello world", "r": "350b...", "s": "bf58...",
//	  "public_key": "b05e..."}]
//
// A record without a "v" gets UnknownRecoveryID, so the client resolves the
// selector against the record's expected public key.
type JSONParser struct {
	// Field name overrides. Zero values mean the defaults digest, message,
	// r, s, v and public_key.
	DigestField    string
	MessageField   string
	RField         string
	SField         string
	VField         string
	PublicKeyField string

	// HashAlgorithm digests the message field of records that do not carry
	// an explicit digest. Defaults to sha256.
	HashAlgorithm string
}

// ParseSignatures reads and validates all records in the JSON file.
func (p *JSONParser) ParseSignatures(filePath string) ([]*Signature, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature file: %w", err)
	}
	defer file.Close()

	var rawRecords []map[string]interface{}

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	if err := decoder.Decode(&rawRecords); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	signatures := make([]*Signature, 0, len(rawRecords))

	for i, record := range rawRecords {
		fields := recordFields{
			digest:    stringField(record, p.DigestField, "digest"),
			message:   stringField(record, p.MessageField, "message"),
			r:         stringField(record, p.RField, "r"),
			s:         stringField(record, p.SField, "s"),
			v:         stringField(record, p.VField, "v"),
			publicKey: stringField(record, p.PublicKeyField, "public_key"),
		}

		sig, err := buildSignature(fields, p.HashAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// CSVParser reads signatures from a CSV file with a header row. The columns
// are matched by name the same way JSONParser matches fields; cells left
// empty count as absent.
type CSVParser struct {
	DigestField    string
	MessageField   string
	RField         string
	SField         string
	VField         string
	PublicKeyField string

	HashAlgorithm string
}

// ParseSignatures reads and validates all rows in the CSV file.
func (p *CSVParser) ParseSignatures(filePath string) ([]*Signature, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("signature file has no header row")
	}

	columns := make(map[string]int, len(rows[0]))
	for idx, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	cell := func(row []string, override, fallback string) string {
		name := fallback
		if override != "" {
			name = override
		}

		idx, ok := columns[strings.ToLower(name)]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	signatures := make([]*Signature, 0, len(rows)-1)

	for i, row := range rows[1:] {
		fields := recordFields{
			digest:    cell(row, p.DigestField, "digest"),
			message:   cell(row, p.MessageField, "message"),
			r:         cell(row, p.RField, "r"),
			s:         cell(row, p.SField, "s"),
			v:         cell(row, p.VField, "v"),
			publicKey: cell(row, p.PublicKeyField, "public_key"),
		}

		sig, err := buildSignature(fields, p.HashAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// recordFields is one parsed record before validation, all fields as text.
type recordFields struct {
	digest    string
	message   string
	r         string
	s         string
	v         string
	publicKey string
}

// buildSignature validates one record and converts it to a Signature.
func buildSignature(fields recordFields, hashAlgorithm string) (*Signature, error) {
	if fields.r == "" || fields.s == "" {
		return nil, fmt.Errorf("missing signature component r or s")
	}

	var digest []byte

	switch {
	case fields.digest != "":
		decoded, err := hexutil.Decode(fields.digest)
		if err != nil {
			return nil, fmt.Errorf("invalid digest hex: %w", err)
		}
		digest = decoded
	case fields.message != "":
		if hashAlgorithm == "" {
			hashAlgorithm = "sha256"
		}

		hashed, err := DigestMessage([]byte(fields.message), hashAlgorithm)
		if err != nil {
			return nil, err
		}
		digest = hashed
	default:
		return nil, fmt.Errorf("record has neither a digest nor a message")
	}

	recoveryID := UnknownRecoveryID
	if fields.v != "" {
		parsed, err := strconv.Atoi(fields.v)
		if err != nil {
			return nil, fmt.Errorf("invalid recovery id %q: %w", fields.v, err)
		}
		recoveryID = parsed
	}

	return &Signature{
		Digest:    digest,
		R:         fields.r,
		S:         fields.s,
		V:         recoveryID,
		PublicKey: fields.publicKey,
	}, nil
}

// stringField extracts one field from a decoded JSON object as text,
// accepting strings and JSON numbers. The fallback name identifies the
// logical field even when the lookup name is overridden: a numeric v stays
// decimal, numeric signature components are converted to the hex form the
// rest of the package speaks.
func stringField(record map[string]interface{}, override, fallback string) string {
	name := fallback
	if override != "" {
		name = override
	}

	value, ok := record[name]
	if !ok {
		return ""
	}

	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		switch fallback {
		case "v":
			return typed.String()
		case "r", "s":
			if parsed, ok := new(big.Int).SetString(typed.String(), 10); ok {
				return parsed.Text(16)
			}
		}

		return ""
	default:
		return ""
	}
}
