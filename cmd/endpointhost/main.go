// endpointhost serves a contract.Endpoint over HTTP, decoding inbound
// call payloads, dispatching them against a wired contract instance,
// and encoding the reply.
//
// Architecture:
//
//	server goroutine — http.ListenAndServe
//	main goroutine   — waits for SIGINT/SIGTERM, then shuts the server down
//	handler          — transport.Handler wraps endpoint.Dispatch
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gipsh/ethabi-dispatch/examples/erc20"
	"github.com/gipsh/ethabi-dispatch/internal/config"
	"github.com/gipsh/ethabi-dispatch/transport"
)

func main() {
	config.Load()
	log.Printf("endpointhost starting | listen=%s path=%s", config.ListenAddr, config.DispatchPath)

	endpoint, _, err := erc20.NewEndpoint()
	if err != nil {
		log.Fatalf("build endpoint: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.DispatchPath, transport.Handler(endpoint.Dispatch))

	srv := &http.Server{
		Addr:    config.ListenAddr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
