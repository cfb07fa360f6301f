package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrtlabs/secretjs-go/enigma"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Client seed operations",
}

var seedOutputFile string

var seedGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh 32-byte client seed",
	Long: `Generate a fresh client seed from the OS CSPRNG and print it as hex.

The seed is the only secret a client needs to retain; a UserKeypair (and
every tx encryption key derived from it) is fully deterministic in this
seed.`,
	RunE: runSeedGenerate,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedGenerateCmd)

	seedGenerateCmd.Flags().StringVarP(&seedOutputFile, "output", "o", "", "Output file (default: stdout)")
}

func runSeedGenerate(cmd *cobra.Command, args []string) error {
	seed, err := enigma.GenerateSeed()
	if err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}

	out := hex.EncodeToString(seed[:]) + "\n"
	if seedOutputFile == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(seedOutputFile, []byte(out), 0600); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	fmt.Printf("Seed saved to: %s\n", seedOutputFile)
	return nil
}
