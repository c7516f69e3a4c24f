package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techtimes/techtimes/api"
	migrations "github.com/techtimes/techtimes/db"
	"github.com/techtimes/techtimes/internal/config"
	"github.com/techtimes/techtimes/internal/db"
	"github.com/techtimes/techtimes/internal/scan"
	"github.com/techtimes/techtimes/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting TechTimes server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Model-assisted scanning is optional; without it the scan endpoint
	// reports offline mode.
	var modelClient *ollama.Client
	if cfg.Scan.Enabled {
		modelClient, err = ollama.NewDefaultClient(cfg.Scan.Client)
		if err != nil {
			log.Fatalf("Failed to create model client: %v", err)
		}
	}
	scanner, err := scan.NewEngine(generatorOrNil(modelClient), cfg.Scan)
	if err != nil {
		log.Fatalf("Failed to create scan engine: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, database, scanner)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if modelClient != nil {
		if err := modelClient.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}

// generatorOrNil keeps the scan engine's client interface nil when scanning
// is disabled; a nil *ollama.Client wrapped in the interface would not
// compare equal to nil inside the engine.
func generatorOrNil(c *ollama.Client) scan.Generator {
	if c == nil {
		return nil
	}
	return c
}
