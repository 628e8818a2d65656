package main

import (
	"fmt"
	"os"

	"github.com/mahdiidarabi/ecdsa-recovery/pkg/ecrecover"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	flags := &digestFlags{}

	var (
		sigR      string
		sigS      string
		publicKey string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an ECDSA signature against a public key",
		RunE: func(_ *cobra.Command, _ []string) error {
			digest, params, err := flags.resolve()
			if err != nil {
				return err
			}

			if sigR == "" || sigS == "" {
				return fmt.Errorf("--r and --s are required")
			}

			if publicKey == "" {
				return fmt.Errorf("--public-key is required")
			}

			valid, err := ecrecover.Verify(digest, sigR, sigS, publicKey, params)
			if err != nil {
				return err
			}

			fmt.Printf("signature valid = %t\n", valid)

			if !valid {
				os.Exit(1)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&sigR, "r", "", "signature component r as hex")
	cmd.Flags().StringVar(&sigS, "s", "", "signature component s as hex")
	cmd.Flags().StringVar(&publicKey, "public-key", "", "public key as hex, with or without the 04 prefix")

	return cmd
}
