package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "secretutil",
	Short: "secretutil - client-side helpers for Secret Network's encrypted contract calls",
	Long: `secretutil provides command-line access to the transparent encryption
layer used to talk to Secret Network's CosmWasm contracts.

This tool supports:
- Client seed generation
- Deriving a user keypair's public key from a seed
- Sealing a contract message for instantiate/execute
- Opening a chain response with a retained nonce`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Commands are registered in their respective files:
	// - seed.go: seedCmd (generate)
	// - pubkey.go: pubkeyCmd (derive)
	// - encrypt.go: encryptCmd
	// - decrypt.go: decryptCmd
	// - serve.go: serveCmd (health/metrics HTTP server)
}
