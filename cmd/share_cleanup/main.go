package main

import (
	"context"
	"log"
	"os"

	"filmoteka/internal/database"
	"filmoteka/internal/repository"
)

// Удаляет share-ссылки с истёкшим сроком. Запускается по cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewSharedListRepository(db)
	removed, err := repo.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup shared_lists failed: %v", err)
	}

	log.Printf("share cleanup completed: shared_lists=%d", removed)
}
