package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TEAM-BIRDIE/BeoTT/internal/agent"
	"github.com/TEAM-BIRDIE/BeoTT/internal/config"
	"github.com/TEAM-BIRDIE/BeoTT/internal/database"
	"github.com/TEAM-BIRDIE/BeoTT/internal/handlers"
	"github.com/TEAM-BIRDIE/BeoTT/internal/history"
	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	hist, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to initialize history store: %v", err)
	}

	llmClient := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel)

	orchestrator := agent.New(repo, llmClient, repo, hist, cfg.BaseCurrency)

	h := handlers.New(repo, orchestrator)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Post("/api/chat", h.Chat)
	r.Get("/api/accounts", h.Accounts)
	r.Get("/api/ledger", h.Ledger)

	log.Printf("Server starting on http://localhost:%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
