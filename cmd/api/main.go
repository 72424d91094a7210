package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"autoviz/app"
	"autoviz/internal/api"
	"autoviz/internal/config"
)

func main() {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	analyzer := app.NewAnalyzerWith(cfg.Analysis.Heuristics)
	server := api.NewServer(analyzer)

	addr := ":" + cfg.Server.Port
	log.Printf("[API] listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatal("Server failed:", err)
	}
}
