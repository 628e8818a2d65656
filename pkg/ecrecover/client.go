package ecrecover

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Client batches public key recovery over many signatures: it parses a
// signature file with its configured parser and recovers every record on its
// configured curve, fanning the work out over a pool of workers.
type Client struct {
	params  *CurveParameters
	parser  SignatureParser
	workers int
}

// NewClient creates a client with the common defaults: NIST P-256, the JSON
// parser and one worker per CPU.
func NewClient() *Client {
	return &Client{
		params: P256Params(),
		parser: &JSONParser{},
	}
}

// WithCurve sets the curve to recover on.
func (c *Client) WithCurve(params *CurveParameters) *Client {
	c.params = params
	return c
}

// WithParser sets the signature file parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets the worker pool size for batch recovery. Zero or negative
// means one worker per CPU.
func (c *Client) WithWorkers(workers int) *Client {
	c.workers = workers
	return c
}

// RecoverFile parses a signature file and recovers every record in it.
func (c *Client) RecoverFile(ctx context.Context, filePath string) ([]*RecoveryResult, error) {
	signatures, err := c.parser.ParseSignatures(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}

	return c.RecoverAll(ctx, signatures)
}

// RecoverAll recovers every signature in the batch. Results line up with the
// input by index. One bad record never aborts the batch: its result carries
// the error and the rest proceed. Cancelling the context stops the batch
// early; unprocessed records then carry the context error.
func (c *Client) RecoverAll(ctx context.Context, signatures []*Signature) ([]*RecoveryResult, error) {
	results := make([]*RecoveryResult, len(signatures))
	if len(signatures) == 0 {
		return results, nil
	}

	numWorkers := c.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(signatures) {
		numWorkers = len(signatures)
	}

	workChan := make(chan int, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-workChan:
					if !ok {
						return
					}
					results[idx] = c.RecoverSignature(signatures[idx])
				}
			}
		}()
	}

dispatch:
	for idx := range signatures {
		select {
		case <-ctx.Done():
			break dispatch
		case workChan <- idx:
		}
	}
	close(workChan)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		for idx, result := range results {
			if result == nil {
				results[idx] = &RecoveryResult{Err: err}
			}
		}

		return results, err
	}

	return results, nil
}

// RecoverSignature recovers a single signature on the client's curve.
//
// A record with a known selector is recovered directly; when the record also
// names an expected public key, Verified reports whether the recovered key
// matches it. A record with UnknownRecoveryID must name the expected key,
// and the selector is found by trial against it.
func (c *Client) RecoverSignature(sig *Signature) *RecoveryResult {
	if sig == nil {
		return &RecoveryResult{Err: fmt.Errorf("signature is nil")}
	}

	if sig.V == UnknownRecoveryID {
		if sig.PublicKey == "" {
			return &RecoveryResult{Err: fmt.Errorf("record gives no recovery id and no public key to resolve it against")}
		}

		recoveryID, err := FindRecoveryID(sig.Digest, sig.R, sig.S, sig.PublicKey, c.params)
		if err != nil {
			return &RecoveryResult{Err: err}
		}

		recovered, err := RecoverPublicKey(sig.Digest, sig.R, sig.S, recoveryID, c.params)
		if err != nil {
			return &RecoveryResult{Err: err}
		}

		return &RecoveryResult{
			PublicKey:  recovered,
			RecoveryID: recoveryID,
			Verified:   true,
		}
	}

	recovered, err := RecoverPublicKey(sig.Digest, sig.R, sig.S, sig.V, c.params)
	if err != nil {
		return &RecoveryResult{Err: err}
	}

	normalized, err := normalizeRecoveryID(sig.V)
	if err != nil {
		return &RecoveryResult{Err: err}
	}

	result := &RecoveryResult{
		PublicKey:  recovered,
		RecoveryID: normalized,
	}

	if sig.PublicKey != "" {
		expected, err := normalizePublicKey(sig.PublicKey, c.params)
		result.Verified = err == nil && expected == recovered
	}

	return result
}
