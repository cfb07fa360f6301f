// Package wire implements the chain's amino-style type/value message
// envelope: transaction messages are JSON objects discriminated by a
// "type" string, not Go's usual tagged-interface marshaling.
package wire

import (
	"encoding/json"
	"fmt"
)

// Msg kind discriminants, matching the chain's amino type strings.
const (
	TypeSend                = "cosmos-sdk/MsgSend"
	TypeStoreCode           = "wasm/MsgStoreCode"
	TypeInstantiateContract = "wasm/MsgInstantiateContract"
	TypeExecuteContract     = "wasm/MsgExecuteContract"
)

// Coin is a single denom/amount pair, as posted on the wire.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// SendValue is the value payload of a cosmos-sdk/MsgSend.
type SendValue struct {
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      []Coin `json:"amount"`
}

// StoreCodeValue is the value payload of a wasm/MsgStoreCode.
type StoreCodeValue struct {
	Sender       string `json:"sender"`
	WASMByteCode string `json:"wasm_byte_code"` // base64
	Source       string `json:"source,omitempty"`
	Builder      string `json:"builder,omitempty"`
}

// InstantiateContractValue is the value payload of a
// wasm/MsgInstantiateContract. InitMsg carries the base64-encoded
// sealed envelope once the outbound encryptor has run.
type InstantiateContractValue struct {
	Sender           string `json:"sender"`
	CodeID           string `json:"code_id"`
	Label            string `json:"label"`
	InitMsg          string `json:"init_msg"` // base64 envelope
	InitFunds        []Coin `json:"init_funds,omitempty"`
	CallbackCodeHash string `json:"callback_code_hash"`
	CallbackSig      []byte `json:"callback_sig"`
}

// ExecuteContractValue is the value payload of a
// wasm/MsgExecuteContract. Msg carries the base64-encoded sealed
// envelope once the outbound encryptor has run.
type ExecuteContractValue struct {
	Sender           string `json:"sender"`
	Contract         string `json:"contract"`
	Msg              string `json:"msg"` // base64 envelope
	SentFunds        []Coin `json:"sent_funds,omitempty"`
	CallbackCodeHash string `json:"callback_code_hash"`
	CallbackSig      []byte `json:"callback_sig"`
}

// Msg is a tagged variant over the handful of message shapes this
// client constructs, plus a catch-all for anything else the chain
// accepts that this client only relays. Exactly one field is set.
type Msg struct {
	Send                *SendValue
	StoreCode           *StoreCodeValue
	InstantiateContract *InstantiateContractValue
	ExecuteContract     *ExecuteContractValue
	Other               *OtherMsg
}

// OtherMsg carries a message type this client does not model
// structurally, preserving its raw value JSON verbatim.
type OtherMsg struct {
	Type  string
	Value json.RawMessage
}

type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON writes the type/value envelope the chain expects.
func (m Msg) MarshalJSON() ([]byte, error) {
	var e envelope
	var err error

	switch {
	case m.Send != nil:
		e.Type = TypeSend
		e.Value, err = json.Marshal(m.Send)
	case m.StoreCode != nil:
		e.Type = TypeStoreCode
		e.Value, err = json.Marshal(m.StoreCode)
	case m.InstantiateContract != nil:
		e.Type = TypeInstantiateContract
		e.Value, err = json.Marshal(m.InstantiateContract)
	case m.ExecuteContract != nil:
		e.Type = TypeExecuteContract
		e.Value, err = json.Marshal(m.ExecuteContract)
	case m.Other != nil:
		e.Type = m.Other.Type
		e.Value = m.Other.Value
	default:
		return nil, fmt.Errorf("wire: Msg has no case set")
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// UnmarshalJSON reconstructs a Msg from its type/value envelope,
// falling back to Other for any type string it doesn't recognize.
func (m *Msg) UnmarshalJSON(data []byte) error {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}

	switch e.Type {
	case TypeSend:
		var v SendValue
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		m.Send = &v
	case TypeStoreCode:
		var v StoreCodeValue
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		m.StoreCode = &v
	case TypeInstantiateContract:
		var v InstantiateContractValue
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		m.InstantiateContract = &v
	case TypeExecuteContract:
		var v ExecuteContractValue
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		m.ExecuteContract = &v
	default:
		m.Other = &OtherMsg{Type: e.Type, Value: e.Value}
	}
	return nil
}

// Type returns the amino type string of whichever case is set.
func (m Msg) Type() string {
	switch {
	case m.Send != nil:
		return TypeSend
	case m.StoreCode != nil:
		return TypeStoreCode
	case m.InstantiateContract != nil:
		return TypeInstantiateContract
	case m.ExecuteContract != nil:
		return TypeExecuteContract
	case m.Other != nil:
		return m.Other.Type
	default:
		return ""
	}
}
