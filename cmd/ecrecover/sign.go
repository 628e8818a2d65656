package main

import (
	"fmt"

	"github.com/mahdiidarabi/ecdsa-recovery/pkg/ecrecover"
	"github.com/spf13/cobra"
)

func newSignCommand() *cobra.Command {
	flags := &digestFlags{}

	var privateKey string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a digest and print the recoverable signature",
		RunE: func(_ *cobra.Command, _ []string) error {
			digest, params, err := flags.resolve()
			if err != nil {
				return err
			}

			if privateKey == "" {
				return fmt.Errorf("--key is required")
			}

			sig, err := ecrecover.Sign(digest, privateKey, params)
			if err != nil {
				return err
			}

			fmt.Printf("r = %s\n", sig.R)
			fmt.Printf("s = %s\n", sig.S)
			fmt.Printf("recovery id = %d\n", sig.V)
			fmt.Printf("public key = %s\n", sig.PublicKey)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&privateKey, "key", "", "private key scalar as hex")

	return cmd
}
