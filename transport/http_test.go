package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gipsh/ethabi-dispatch/abi"
)

func TestHTTPClientRoundTrip(t *testing.T) {
	dispatch := func(payload []byte) ([]byte, error) {
		require.Len(t, payload, 4)
		var word [32]byte
		word[31] = 0x2a
		return word[:], nil
	}

	srv := httptest.NewServer(Handler(dispatch))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "/dispatch")
	reply, err := client.Transport()([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, byte(0x2a), reply[31])
}

func TestHTTPClientPropagatesHostError(t *testing.T) {
	dispatch := func(payload []byte) ([]byte, error) {
		return nil, abi.ErrUnknownSignature
	}

	srv := httptest.NewServer(Handler(dispatch))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "/dispatch")
	_, err := client.Transport()([]byte{0x01, 0x02, 0x03, 0x04})
	assert.Error(t, err)
}

func TestHTTPClientNoReplyWord(t *testing.T) {
	dispatch := func(payload []byte) ([]byte, error) {
		return nil, nil
	}

	srv := httptest.NewServer(Handler(dispatch))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "/dispatch")
	reply, err := client.Transport()([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestHandlerRejectsMalformedRequest(t *testing.T) {
	dispatch := func(payload []byte) ([]byte, error) { return nil, nil }
	handler := Handler(dispatch)

	req := httptest.NewRequest(http.MethodPost, "/dispatch", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
