package main

import (
	"log"
	"net/http"
	"os"

	"reclaimit-api/internal"
	"reclaimit-api/internal/config"
)

func main() {
	// Load and validate configuration
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Validate database connection string
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	// Create and start server
	srv := internal.NewServer(dsn, cfg)

	log.Println("Starting ReclaimIT asset recovery API server...")
	if cfg.OllamaModel != "" {
		log.Printf("LLM drafting enabled: model %s at %s", cfg.OllamaModel, cfg.OllamaServerURL)
	} else {
		log.Println("LLM drafting disabled, using template fallback")
	}
	log.Printf("Listening on %s", cfg.Addr)

	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Router))
}
