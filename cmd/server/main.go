package main

import (
	"log"
	"net/http"

	"budgetbook/internal/config"
	"budgetbook/internal/handlers"
	"budgetbook/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	cfg := config.Load()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	h := handlers.NewHandlers(db, cfg)

	log.Printf("Listening on :%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := http.ListenAndServe(":"+cfg.Port, h.Router()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
