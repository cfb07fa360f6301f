package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrtlabs/secretjs-go/enigma"
)

var (
	encryptSeedHex  string
	encryptIoPubHex string
	encryptCodeHash string
	encryptMsgFile  string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Seal a contract message for instantiate/execute",
	Long: `Seal a JSON contract message into the base64 envelope the chain
expects in value.init_msg / value.msg, given a client seed, the
consensus I/O public key, and the target contract's code hash.`,
	RunE: runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVarP(&encryptSeedHex, "seed", "s", "", "Hex-encoded 32-byte client seed (required)")
	encryptCmd.Flags().StringVar(&encryptIoPubHex, "io-pubkey", "", "Hex-encoded 32-byte consensus I/O public key (required)")
	encryptCmd.Flags().StringVar(&encryptCodeHash, "code-hash", "", "Lowercase hex code hash of the target contract (required)")
	encryptCmd.Flags().StringVarP(&encryptMsgFile, "msg", "m", "-", "Path to the JSON message file, or - for stdin")

	encryptCmd.MarkFlagRequired("seed")
	encryptCmd.MarkFlagRequired("io-pubkey")
	encryptCmd.MarkFlagRequired("code-hash")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	kp, err := keypairFromSeedHex(encryptSeedHex)
	if err != nil {
		return err
	}

	ioPub, err := decodeIoPubKey(encryptIoPubHex)
	if err != nil {
		return err
	}

	payload, err := readMsgInput(encryptMsgFile)
	if err != nil {
		return err
	}

	envelope, err := kp.Seal(ioPub, encryptCodeHash, payload)
	if err != nil {
		return fmt.Errorf("seal message: %w", err)
	}

	fmt.Println(base64.StdEncoding.EncodeToString(envelope))
	return nil
}

func keypairFromSeedHex(seedHex string) (*enigma.UserKeypair, error) {
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("seed is not valid hex: %w", err)
	}
	seed, err := enigma.SeedFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return enigma.KeyPairFromSeed(seed)
}

func decodeIoPubKey(pubHex string) ([enigma.KeySize]byte, error) {
	var out [enigma.KeySize]byte
	raw, err := hex.DecodeString(pubHex)
	if err != nil {
		return out, fmt.Errorf("io-pubkey is not valid hex: %w", err)
	}
	if len(raw) != enigma.KeySize {
		return out, fmt.Errorf("io-pubkey must be %d bytes, got %d", enigma.KeySize, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func readMsgInput(path string) (json.RawMessage, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read message from stdin: %w", err)
		}
		return json.RawMessage(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message file: %w", err)
	}
	return json.RawMessage(data), nil
}
