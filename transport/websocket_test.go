package transport

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// echoDispatchServer accepts one websocket connection and replies to
// every callEnvelope it receives with a fixed 32-byte result word,
// preserving the correlation ID.
func echoDispatchServer(t *testing.T, result [32]byte) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env callEnvelope
			if err := json.Unmarshal(msg, &env); err != nil {
				continue
			}
			reply := replyEnvelope{
				CorrelationID: env.CorrelationID,
				Result:        base64.StdEncoding.EncodeToString(result[:]),
			}
			out, _ := json.Marshal(reply)
			_ = conn.WriteMessage(websocket.TextMessage, out)
		}
	}))
}

func TestWSClientRoundTrip(t *testing.T) {
	var want [32]byte
	want[31] = 0x7b

	srv := echoDispatchServer(t, want)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := NewWSClient(wsURL)
	client.Start()
	defer client.Stop()

	deadline := time.Now().Add(2 * time.Second)
	var reply *[32]byte
	var err error
	for time.Now().Before(deadline) {
		reply, err = client.Transport()([]byte{0xaa, 0xbb, 0xcc, 0xdd})
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	require.NotNil(t, reply)
	require.Equal(t, want, *reply)
}

func TestWSClientErrorsWhenNotConnected(t *testing.T) {
	client := NewWSClient("ws://127.0.0.1:0/unreachable")
	_, err := client.Transport()([]byte{0x01})
	require.Error(t, err)
}
