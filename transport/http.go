// Package transport supplies concrete abi.TransportFunc implementations:
// the "bytes in, optional 32-byte bytes out" boundary a Client calls
// through and a host process answers on the other side.
package transport

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gipsh/ethabi-dispatch/abi"
)

// HTTPClient posts ABI call payloads to a host endpoint and decodes its
// reply, grounded on the same request/response plumbing a CLOB client
// uses for its order-submission calls.
type HTTPClient struct {
	host    string
	path    string
	httpCli *http.Client
}

// NewHTTPClient builds an HTTPClient that POSTs to host+path with a
// 10 second request timeout.
func NewHTTPClient(host, path string) *HTTPClient {
	return &HTTPClient{
		host:    host,
		path:    path,
		httpCli: &http.Client{Timeout: 10 * time.Second},
	}
}

type callEnvelope struct {
	CorrelationID string `json:"correlation_id"`
	Payload       string `json:"payload"` // base64
}

type replyEnvelope struct {
	CorrelationID string `json:"correlation_id"`
	Result        string `json:"result"` // base64, empty if no reply word
	Error         string `json:"error,omitempty"`
}

// Transport returns an abi.TransportFunc backed by this client, so it
// plugs directly into contract.NewClient or abi.Table.Call.
func (c *HTTPClient) Transport() abi.TransportFunc {
	return c.call
}

func (c *HTTPClient) call(payload []byte) (*[32]byte, error) {
	env := callEnvelope{
		CorrelationID: uuid.NewString(),
		Payload:       base64.StdEncoding.EncodeToString(payload),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("transport: marshal call: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.host+c.path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-ID", env.CorrelationID)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: POST %s: %w", c.path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("transport: POST %s: HTTP %d: %s", c.path, resp.StatusCode, respBody)
	}

	var reply replyEnvelope
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, fmt.Errorf("transport: parse reply: %w", err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("transport: host error: %s", reply.Error)
	}
	if reply.Result == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(reply.Result)
	if err != nil {
		return nil, fmt.Errorf("transport: decode reply: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("transport: reply is %d bytes, want 32", len(raw))
	}
	var word [32]byte
	copy(word[:], raw)
	return &word, nil
}

// Handler adapts a contract.Endpoint-style dispatch function
// (abi.Table.Dispatch's signature less the selector split — here the
// raw "decode payload, invoke, encode reply" round trip) into an
// http.HandlerFunc that speaks the same JSON envelope HTTPClient sends.
func Handler(dispatch func(payload []byte) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var env callEnvelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
			return
		}

		payload, err := base64.StdEncoding.DecodeString(env.Payload)
		if err != nil {
			http.Error(w, fmt.Sprintf("decode payload: %v", err), http.StatusBadRequest)
			return
		}

		reply := replyEnvelope{CorrelationID: env.CorrelationID}
		result, err := dispatch(payload)
		if err != nil {
			reply.Error = err.Error()
		} else if len(result) > 0 {
			reply.Result = base64.StdEncoding.EncodeToString(result)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}
}
