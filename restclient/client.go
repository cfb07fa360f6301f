// Package restclient implements the transport adapter to the chain's
// LCD REST API: plain GET/POST JSON plus a typed broadcast-transaction
// call, with non-2xx responses converted into the caller-facing error
// taxonomy defined in package enigma.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scrtlabs/secretjs-go/enigma"
	"github.com/scrtlabs/secretjs-go/internal/metrics"
)

// Client is a thin REST client over a chain's LCD endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client against baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Get issues a GET against path and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	start := time.Now()
	success := false
	defer func() {
		elapsed := time.Since(start)
		metrics.LCDRequestDuration.WithLabelValues("GET").Observe(elapsed.Seconds())
		metrics.GetGlobalCollector().RecordLCDCall(success, elapsed)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		metrics.LCDRequests.WithLabelValues("GET", "error").Inc()
		return &enigma.TransportError{Op: "GET " + path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.LCDRequests.WithLabelValues("GET", "error").Inc()
		return &enigma.TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := c.decodeResponse(resp, out); err != nil {
		metrics.LCDRequests.WithLabelValues("GET", "error").Inc()
		return err
	}
	metrics.LCDRequests.WithLabelValues("GET", "ok").Inc()
	success = true
	return nil
}

// Post issues a POST with a JSON body against path and decodes the
// JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	start := time.Now()
	success := false
	defer func() {
		elapsed := time.Since(start)
		metrics.LCDRequestDuration.WithLabelValues("POST").Observe(elapsed.Seconds())
		metrics.GetGlobalCollector().RecordLCDCall(success, elapsed)
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		metrics.LCDRequests.WithLabelValues("POST", "error").Inc()
		return fmt.Errorf("restclient: marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		metrics.LCDRequests.WithLabelValues("POST", "error").Inc()
		return &enigma.TransportError{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.LCDRequests.WithLabelValues("POST", "error").Inc()
		return &enigma.TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := c.decodeResponse(resp, out); err != nil {
		metrics.LCDRequests.WithLabelValues("POST", "error").Inc()
		return err
	}
	metrics.LCDRequests.WithLabelValues("POST", "ok").Inc()
	success = true
	return nil
}

// StdTx is the signed-transaction envelope posted to /txs.
type StdTx struct {
	Msgs       []json.RawMessage `json:"msg"`
	Fee        json.RawMessage   `json:"fee"`
	Signatures []json.RawMessage `json:"signatures"`
	Memo       string            `json:"memo"`
}

// PostTxRequest wraps a StdTx with the chain's broadcast mode.
type PostTxRequest struct {
	Tx   StdTx  `json:"tx"`
	Mode string `json:"mode"`
}

// PostTxResponse is the chain's broadcast result.
type PostTxResponse struct {
	Height    string `json:"height"`
	TxHash    string `json:"txhash"`
	Code      int    `json:"code"`
	RawLog    string `json:"raw_log"`
	Data      string `json:"data"`
	GasWanted string `json:"gas_wanted"`
	GasUsed   string `json:"gas_used"`
}

// PostTx broadcasts a signed transaction using the given mode
// ("block", "sync", or "async").
func (c *Client) PostTx(ctx context.Context, tx StdTx, mode string) (PostTxResponse, error) {
	var out PostTxResponse
	err := c.Post(ctx, "/txs", PostTxRequest{Tx: tx, Mode: mode}, &out)
	return out, err
}

// GetMasterCert fetches the chain's registration master certificate
// verbatim; it is opaque bytes to this client (see DESIGN.md Open
// Question decisions).
func (c *Client) GetMasterCert(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Get(ctx, "/register/master-cert", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// decodeResponse maps a non-2xx status to the typed error taxonomy and
// otherwise JSON-decodes the body into out.
func (c *Client) decodeResponse(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &enigma.TransportError{Op: "read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if jsonErr := json.Unmarshal(body, &eb); jsonErr == nil && eb.Error != "" {
			if strings.HasPrefix(eb.Error, "not found: contract") {
				return &enigma.ContractNotFound{Address: eb.Error}
			}
			return &enigma.ServerError{Status: resp.StatusCode, Body: eb.Error}
		}
		if len(body) == 0 {
			return &enigma.TransportError{Op: fmt.Sprintf("status %d", resp.StatusCode), Err: fmt.Errorf("empty body")}
		}
		return &enigma.ServerError{Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &enigma.SchemaError{Detail: fmt.Sprintf("unmarshal response: %v", err)}
	}
	return nil
}
