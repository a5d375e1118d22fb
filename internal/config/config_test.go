package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppliesDefaults(t *testing.T) {
	for _, key := range []string{"HOST_URL", "LISTEN_ADDR", "DISPATCH_PATH", "TRANSPORT", "LOG_LEVEL", "DIAL_TIMEOUT_SEC", "PING_INTERVAL_SEC", "CONTRACT_SPEC_FILE", "OWNER_ADDRESS", "TRANSFER_AMOUNT"} {
		os.Unsetenv(key)
	}

	Load()

	assert.Equal(t, "http://127.0.0.1:8080", HostURL)
	assert.Equal(t, ":8080", ListenAddr)
	assert.Equal(t, "/dispatch", DispatchPath)
	assert.Equal(t, TransportHTTP, Transport)
	assert.Equal(t, "INFO", LogLevel)
	assert.Equal(t, 10.0, DialTimeoutSec)
	assert.Equal(t, 15.0, PingIntervalS)
	assert.Equal(t, "", ContractSpecFile)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", OwnerAddress)
	assert.Equal(t, "0", TransferAmount)
}

func TestLoadReadsOverrides(t *testing.T) {
	os.Setenv("TRANSPORT", "ws")
	os.Setenv("DIAL_TIMEOUT_SEC", "5")
	defer os.Unsetenv("TRANSPORT")
	defer os.Unsetenv("DIAL_TIMEOUT_SEC")

	Load()

	assert.Equal(t, TransportWS, Transport)
	assert.Equal(t, 5.0, DialTimeoutSec)
}
