package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/network"
	"github.com/axon-labs/axonsim/node"
	"github.com/axon-labs/axonsim/store"
	"github.com/axon-labs/axonsim/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		log.Fatalf("Error resolving the absolute path of the data directory: %v", err)
	}
	log.Printf("INFO: using state data directory: %s", dataDir)

	badgerStore, err := store.NewBadgerStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open the state store at %s: %v", dataDir, err)
	}
	defer badgerStore.Close()

	bus := types.GetMessageBus()

	n, err := node.New(cfg, badgerStore, bus)
	if err != nil {
		log.Fatalf("Failed to initialize the node: %v", err)
	}
	n.Start()

	router := network.NewRouter(bus, n.NotifyStream())
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router.SetupRoutes(cfg.AllowedOrigins),
	}

	go func() {
		log.Printf("INFO: serving HTTP on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("INFO: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("WARN: HTTP server shutdown: %v", err)
	}
}
