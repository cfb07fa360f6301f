package config

import "fmt"

func errRequiredField(field string) error {
	return fmt.Errorf("config: %s is required", field)
}

func errInvalidBroadcastMode(mode string) error {
	return fmt.Errorf("config: invalid broadcast mode %q (want block, sync, or async)", mode)
}
