package main

import (
	"fmt"

	"github.com/mahdiidarabi/ecdsa-recovery/internal/hexutil"
	"github.com/mahdiidarabi/ecdsa-recovery/pkg/ecrecover"
	"github.com/spf13/cobra"
)

// newRootCommand wires up the ecrecover command tree.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ecrecover",
		Short:         "Create, verify and recover ECDSA signatures over prime curves",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRecoverCommand(),
		newSignCommand(),
		newVerifyCommand(),
	)

	return root
}

// digestFlags carries the flags shared by every subcommand that operates on
// a message, either pre-hashed (--digest) or raw (--message plus --hash).
type digestFlags struct {
	digestHex string
	message   string
	hash      string
	curveName string
}

func (f *digestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.digestHex, "digest", "", "message digest as hex")
	cmd.Flags().StringVar(&f.message, "message", "", "raw message, hashed with --hash before use")
	cmd.Flags().StringVar(&f.hash, "hash", "sha256", "digest algorithm for --message: sha256, sha384, sha512 or keccak256")
	cmd.Flags().StringVar(&f.curveName, "curve", "P-256", "curve name: P-256, P-384, P-521 or secp256k1")
}

// resolve validates the shared flags and produces the digest bytes and curve
// parameters the subcommand should operate on.
func (f *digestFlags) resolve() ([]byte, *ecrecover.CurveParameters, error) {
	params, err := ecrecover.CurveByName(f.curveName)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case f.digestHex != "" && f.message != "":
		return nil, nil, fmt.Errorf("--digest and --message are mutually exclusive")
	case f.digestHex != "":
		digest, err := hexutil.Decode(f.digestHex)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --digest: %w", err)
		}

		return digest, params, nil
	case f.message != "":
		digest, err := ecrecover.DigestMessage([]byte(f.message), f.hash)
		if err != nil {
			return nil, nil, err
		}

		return digest, params, nil
	default:
		return nil, nil, fmt.Errorf("one of --digest or --message is required")
	}
}
