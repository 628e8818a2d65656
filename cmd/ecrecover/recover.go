package main

import (
	"fmt"
	"strings"

	"github.com/mahdiidarabi/ecdsa-recovery/pkg/ecrecover"
	"github.com/spf13/cobra"
)

func newRecoverCommand() *cobra.Command {
	flags := &digestFlags{}

	var (
		sigR          string
		sigS          string
		recoveryID    int
		publicKey     string
		signaturePath string
		format        string
		workers       int
	)

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the public key that produced an ECDSA signature",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if signaturePath != "" {
				return runBatchRecover(cmd, flags.curveName, signaturePath, format, workers)
			}

			digest, params, err := flags.resolve()
			if err != nil {
				return err
			}

			if sigR == "" || sigS == "" {
				return fmt.Errorf("--r and --s are required")
			}

			if recoveryID == ecrecover.UnknownRecoveryID {
				if publicKey == "" {
					return fmt.Errorf("--v or --public-key is required")
				}

				recoveryID, err = ecrecover.FindRecoveryID(digest, sigR, sigS, publicKey, params)
				if err != nil {
					return err
				}
			}

			recovered, err := ecrecover.RecoverPublicKey(digest, sigR, sigS, recoveryID, params)
			if err != nil {
				return err
			}

			fmt.Printf("recovery id = %d\n", recoveryID)
			fmt.Printf("public key = %s\n", recovered)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&sigR, "r", "", "signature component r as hex")
	cmd.Flags().StringVar(&sigS, "s", "", "signature component s as hex")
	cmd.Flags().IntVar(&recoveryID, "v", ecrecover.UnknownRecoveryID,
		"recovery selector: 0, 1, 27 or 28; omit to resolve it against --public-key")
	cmd.Flags().StringVar(&publicKey, "public-key", "", "expected public key, used when --v is omitted")
	cmd.Flags().StringVar(&signaturePath, "signatures", "", "batch mode: path to a signature file")
	cmd.Flags().StringVar(&format, "format", "json", "batch file format: json or csv")
	cmd.Flags().IntVar(&workers, "workers", 0, "batch worker count, 0 means one per CPU")

	return cmd
}

// runBatchRecover processes a whole signature file concurrently and prints
// one line per record.
func runBatchRecover(cmd *cobra.Command, curveName, path, format string, workers int) error {
	params, err := ecrecover.CurveByName(curveName)
	if err != nil {
		return err
	}

	var parser ecrecover.SignatureParser

	switch strings.ToLower(format) {
	case "json":
		parser = &ecrecover.JSONParser{}
	case "csv":
		parser = &ecrecover.CSVParser{}
	default:
		return fmt.Errorf("unsupported format %q, want json or csv", format)
	}

	client := ecrecover.NewClient().
		WithCurve(params).
		WithParser(parser).
		WithWorkers(workers)

	results, err := client.RecoverFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	recovered := 0

	for i, result := range results {
		if result.Err != nil {
			fmt.Printf("record %d: error: %v\n", i, result.Err)

			continue
		}

		recovered++

		fmt.Printf("record %d: public key = %s (recovery id %d, verified %t)\n",
			i, result.PublicKey, result.RecoveryID, result.Verified)
	}

	fmt.Printf("recovered %d/%d signatures\n", recovered, len(results))

	return nil
}
