package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrtlabs/secretjs-go/client"
	"github.com/scrtlabs/secretjs-go/enigma"
)

var (
	decryptSeedHex  string
	decryptIoPubHex string
	decryptNonceHex string
	decryptDataHex  string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Open a chain response with a retained nonce",
	Long: `Decrypt the hex-encoded tx data field of a broadcast result using
the nonce retained from the matching encrypt call.`,
	RunE: runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptSeedHex, "seed", "s", "", "Hex-encoded 32-byte client seed (required)")
	decryptCmd.Flags().StringVar(&decryptIoPubHex, "io-pubkey", "", "Hex-encoded 32-byte consensus I/O public key (required)")
	decryptCmd.Flags().StringVar(&decryptNonceHex, "nonce", "", "Hex-encoded nonce retained from the encrypt call (required)")
	decryptCmd.Flags().StringVarP(&decryptDataHex, "data", "d", "", "Hex-encoded tx data field (required)")

	decryptCmd.MarkFlagRequired("seed")
	decryptCmd.MarkFlagRequired("io-pubkey")
	decryptCmd.MarkFlagRequired("nonce")
	decryptCmd.MarkFlagRequired("data")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	kp, err := keypairFromSeedHex(decryptSeedHex)
	if err != nil {
		return err
	}

	ioPub, err := decodeIoPubKey(decryptIoPubHex)
	if err != nil {
		return err
	}

	nonceRaw, err := hex.DecodeString(decryptNonceHex)
	if err != nil {
		return fmt.Errorf("nonce is not valid hex: %w", err)
	}
	if len(nonceRaw) != enigma.NonceSize {
		return fmt.Errorf("nonce must be %d bytes, got %d", enigma.NonceSize, len(nonceRaw))
	}
	var nonce [enigma.NonceSize]byte
	copy(nonce[:], nonceRaw)

	decryptor := client.NewDecryptor(kp, ioPub)
	plaintext, err := decryptor.DecryptData(nonce, decryptDataHex)
	if err != nil {
		return fmt.Errorf("decrypt tx data: %w", err)
	}

	fmt.Println(string(plaintext))
	return nil
}
