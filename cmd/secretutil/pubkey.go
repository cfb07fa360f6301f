package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrtlabs/secretjs-go/enigma"
)

var pubkeySeedHex string

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "User keypair public-key operations",
}

var pubkeyDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the public key for a hex-encoded seed",
	Long:  `Derive and print the hex-encoded public key of the UserKeypair deterministically derived from --seed.`,
	RunE:  runPubkeyDerive,
}

func init() {
	rootCmd.AddCommand(pubkeyCmd)
	pubkeyCmd.AddCommand(pubkeyDeriveCmd)

	pubkeyDeriveCmd.Flags().StringVarP(&pubkeySeedHex, "seed", "s", "", "Hex-encoded 32-byte client seed (required)")
	pubkeyDeriveCmd.MarkFlagRequired("seed")
}

func runPubkeyDerive(cmd *cobra.Command, args []string) error {
	raw, err := hex.DecodeString(pubkeySeedHex)
	if err != nil {
		return fmt.Errorf("seed is not valid hex: %w", err)
	}

	seed, err := enigma.SeedFromBytes(raw)
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	kp, err := enigma.KeyPairFromSeed(seed)
	if err != nil {
		return fmt.Errorf("derive keypair: %w", err)
	}

	pub := kp.PublicKey()
	fmt.Println(hex.EncodeToString(pub[:]))
	return nil
}
