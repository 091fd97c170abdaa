package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savegress/ledgermatch/internal/api"
	"github.com/savegress/ledgermatch/internal/config"
	"github.com/savegress/ledgermatch/internal/reconciliation"
)

func main() {
	log.Println("Starting ledgermatch...")

	// Load configuration
	cfg := loadConfig()

	// Initialize reconciliation engine
	reconEngine := reconciliation.NewEngine(&cfg.Reconciliation)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reconEngine.Start(ctx); err != nil {
		log.Fatalf("Failed to start reconciliation engine: %v", err)
	}

	// Create API server
	server := api.NewServer(cfg, reconEngine)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("ledgermatch API listening on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down ledgermatch...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	reconEngine.Stop()

	log.Println("ledgermatch stopped")
}

func loadConfig() *config.Config {
	configPath := os.Getenv("LEDGERMATCH_CONFIG")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Printf("Failed to load config from %s: %v, using defaults", configPath, err)
			return config.LoadFromEnv()
		}
		return cfg
	}
	return config.LoadFromEnv()
}
