package txsign

import "fmt"

// InvalidKeyError reports a raw private key of the wrong length.
type InvalidKeyError struct {
	Len int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("txsign: private key must be 32 bytes, got %d", e.Len)
}
