package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// TxWaiter waits for a broadcast transaction's inclusion in a block by
// subscribing to the Tendermint RPC websocket's tx event stream,
// falling back to polling the LCD /txs/{hash} endpoint if the socket
// cannot be established. This is a convenience beyond raw broadcast:
// the encrypt/decrypt boundary around post_tx is unaffected either way.
type TxWaiter struct {
	wsURL        string
	dialTimeout  time.Duration
	pollInterval time.Duration
}

// NewTxWaiter builds a waiter against a Tendermint RPC websocket URL
// (e.g. "wss://rpc.example.com/websocket").
func NewTxWaiter(wsURL string) *TxWaiter {
	return &TxWaiter{
		wsURL:        wsURL,
		dialTimeout:  10 * time.Second,
		pollInterval: 2 * time.Second,
	}
}

// PollFunc fetches a transaction by hash via the LCD REST endpoint,
// returning (tx JSON, found, error). found is false while the tx has
// not yet landed in a block.
type PollFunc func(ctx context.Context, txHash string) (json.RawMessage, bool, error)

// WaitForTx blocks until txHash is included in a block, or ctx is
// done. It first tries the websocket subscription; on any dial or
// subscribe failure it falls back to polling via poll.
func (w *TxWaiter) WaitForTx(ctx context.Context, txHash string, poll PollFunc) (json.RawMessage, error) {
	result, err := w.waitViaWebsocket(ctx, txHash)
	if err == nil {
		return result, nil
	}
	return w.waitViaPolling(ctx, txHash, poll)
}

func (w *TxWaiter) waitViaWebsocket(ctx context.Context, txHash string) (json.RawMessage, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: w.dialTimeout}
	conn, resp, err := dialer.DialContext(ctx, w.wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("restclient: websocket dial failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("restclient: websocket dial failed: %w", err)
	}
	defer conn.Close()

	subscribeReq, err := NewJSONRPCRequest("subscribe", map[string]string{
		"query": fmt.Sprintf("tm.event='Tx' AND tx.hash='%s'", txHash),
	})
	if err != nil {
		return nil, err
	}
	if err := conn.WriteJSON(subscribeReq); err != nil {
		return nil, fmt.Errorf("restclient: subscribe write failed: %w", err)
	}

	for {
		var msg JSONRPCResponse
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("restclient: websocket read failed: %w", err)
		}
		if msg.Error != nil {
			return nil, msg.Error
		}
		if msg.Result == nil {
			continue
		}
		var event struct {
			Data struct {
				Value json.RawMessage `json:"value"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg.Result, &event); err != nil {
			continue
		}
		if event.Data.Value == nil {
			continue // empty result is the subscription ack
		}
		return event.Data.Value, nil
	}
}

func (w *TxWaiter) waitViaPolling(ctx context.Context, txHash string, poll PollFunc) (json.RawMessage, error) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		result, found, err := poll(ctx, txHash)
		if err != nil {
			return nil, err
		}
		if found {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
