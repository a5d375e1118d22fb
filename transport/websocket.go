package transport

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/google/uuid"

	"github.com/gipsh/ethabi-dispatch/abi"
)

const (
	wsReconnectDelay = 2 * time.Second
	wsPingInterval   = 15 * time.Second
)

// WSClient maintains a persistent websocket connection to a dispatch
// host and turns it into a request/reply abi.TransportFunc by
// correlating outbound calls with inbound replies via a UUID, the same
// role a reconnecting price/fill feed plays for inbound-only streams.
type WSClient struct {
	url string

	mu      sync.Mutex
	conn    *websocket.Conn
	running bool
	stopCh  chan struct{}

	pending   map[string]chan replyEnvelope
	pendingMu sync.Mutex
}

// NewWSClient builds a client for url; call Start before Transport is
// usable.
func NewWSClient(url string) *WSClient {
	return &WSClient{
		url:     url,
		stopCh:  make(chan struct{}),
		pending: make(map[string]chan replyEnvelope),
	}
}

// Start launches the background connect/reconnect loop.
func (c *WSClient) Start() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	go c.connectForever()
	log.Println("[transport/ws] started")
}

// Stop closes the connection and ends the reconnect loop.
func (c *WSClient) Stop() {
	c.mu.Lock()
	c.running = false
	conn := c.conn
	c.mu.Unlock()
	close(c.stopCh)
	if conn != nil {
		_ = conn.Close()
	}
	log.Println("[transport/ws] stopped")
}

// Transport returns an abi.TransportFunc that sends payload over the
// live connection and blocks until the matching reply arrives or
// timeout elapses.
func (c *WSClient) Transport() abi.TransportFunc {
	return c.call
}

func (c *WSClient) call(payload []byte) (*[32]byte, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("transport: websocket: not connected")
	}

	env := callEnvelope{
		CorrelationID: uuid.NewString(),
		Payload:       base64.StdEncoding.EncodeToString(payload),
	}

	ch := make(chan replyEnvelope, 1)
	c.pendingMu.Lock()
	c.pending[env.CorrelationID] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, env.CorrelationID)
		c.pendingMu.Unlock()
	}()

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("transport: marshal call: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("transport: websocket write: %w", err)
	}

	select {
	case reply := <-ch:
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
	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("transport: websocket: call %s timed out", env.CorrelationID)
	}
}

func (c *WSClient) connectForever() {
	for {
		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if !running {
			return
		}
		if err := c.listen(); err != nil && running {
			log.Printf("[transport/ws] disconnected: %v — reconnecting in %s", err, wsReconnectDelay)
			time.Sleep(wsReconnectDelay)
		}
	}
}

func (c *WSClient) listen() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	log.Println("[transport/ws] connected")

	stopPing := make(chan struct{})
	go func() {
		tick := time.NewTicker(wsPingInterval)
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			case <-stopPing:
				return
			}
		}
	}()
	defer close(stopPing)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.conn = nil
			c.mu.Unlock()
			return err
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(raw []byte) {
	var reply replyEnvelope
	if err := json.Unmarshal(raw, &reply); err != nil {
		log.Printf("[transport/ws] malformed reply: %v", err)
		return
	}

	c.pendingMu.Lock()
	ch, ok := c.pending[reply.CorrelationID]
	c.pendingMu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- reply:
	default:
	}
}
