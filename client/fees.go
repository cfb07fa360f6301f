package client

import "github.com/scrtlabs/secretjs-go/config"

// StdFeeFor returns the wire-shaped fee/amount for one of the four
// well-known operations, pulled from the configured fee table
// (config.FeeTableConfig, already merged field-wise atop the spec
// defaults by config.Load).
func StdFeeFor(table *config.FeeTableConfig, op string) config.FeeAmount {
	switch op {
	case "upload":
		return table.Upload
	case "init":
		return table.Init
	case "exec":
		return table.Exec
	case "send":
		return table.Send
	default:
		return table.Exec
	}
}
