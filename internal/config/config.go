// Package config loads host/client configuration from environment / .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// TransportKind selects which abi.TransportFunc implementation a
// dispatch client dials.
type TransportKind string

const (
	TransportHTTP TransportKind = "http"
	TransportWS   TransportKind = "ws"
)

// ── Config fields (populated by Load) ───────────────────────────────────
var (
	// Endpoint host the client dials and the endpoint host listens on.
	HostURL      string
	ListenAddr   string
	DispatchPath string

	Transport TransportKind

	LogLevel string

	// Timing
	DialTimeoutSec float64
	PingIntervalS  float64

	// ContractSpecFile holds CONTRACT_SPEC_FILE, a path to a YAML
	// declarative contract definition (see contract.LoadContractSpec).
	// Neither demo command reads it; both always use the built-in
	// erc20 example.
	ContractSpecFile string

	// OwnerAddress/TransferAmount parameterize dispatchclient's demo
	// calls; TransferAmount is a base-10 string since it may exceed
	// int64 range.
	OwnerAddress   string
	TransferAmount string
)

// Load reads .env (if present) then overrides from OS env vars,
// populating the package-level config vars above.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using OS environment")
	}

	HostURL = getEnv("HOST_URL", "http://127.0.0.1:8080")
	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	DispatchPath = getEnv("DISPATCH_PATH", "/dispatch")

	Transport = TransportKind(strings.ToLower(getEnv("TRANSPORT", string(TransportHTTP))))

	LogLevel = getEnv("LOG_LEVEL", "INFO")

	DialTimeoutSec = getEnvFloat("DIAL_TIMEOUT_SEC", 10.0)
	PingIntervalS = getEnvFloat("PING_INTERVAL_SEC", 15.0)

	ContractSpecFile = getEnv("CONTRACT_SPEC_FILE", "")

	OwnerAddress = getEnv("OWNER_ADDRESS", "0x0000000000000000000000000000000000000000")
	TransferAmount = getEnv("TRANSFER_AMOUNT", "0")
}

// ── Helpers ──────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
