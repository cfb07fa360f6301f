package restclient

import (
	"encoding/json"

	"github.com/google/uuid"
)

// JSONRPCRequest is a Tendermint JSON-RPC 2.0 request envelope.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewJSONRPCRequest builds a request with a fresh correlation id,
// matching the teacher's use of uuid.NewString() for request ids.
func NewJSONRPCRequest(method string, params interface{}) (JSONRPCRequest, error) {
	var raw json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return JSONRPCRequest{}, err
		}
		raw = encoded
	}
	return JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  raw,
	}, nil
}

// JSONRPCResponse is a Tendermint JSON-RPC 2.0 response envelope.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError is the error object of a Tendermint JSON-RPC response.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *JSONRPCError) Error() string {
	if e.Data != "" {
		return e.Message + ": " + e.Data
	}
	return e.Message
}
