package main

import (
	"encoding/json"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"filmoteka/internal/database"
	"filmoteka/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "filmoteka.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// AutoMigrate to ensure schema is up to date
	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Favorite{},
		&domain.SharedList{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM shared_lists")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	demo := domain.User{
		ID:           uuid.NewString(),
		Email:        "demo@filmoteka.dev",
		PasswordHash: string(hash),
	}
	db.Create(&demo)
	log.Println("Demo user created: demo@filmoteka.dev / password123")

	// ================== FAVORITES ==================
	log.Println("Creating favorites...")

	poster := func(p string) *string { return &p }
	movies := []domain.Movie{
		{
			ID:          27205,
			Title:       "Inception",
			PosterPath:  poster("/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg"),
			Overview:    "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets.",
			ReleaseDate: "2010-07-15",
			VoteAverage: 8.4,
			VoteCount:   34000,
			GenreIDs:    []int{28, 878, 12},
		},
		{
			ID:          949,
			Title:       "Heat",
			PosterPath:  poster("/umSVjVdbVwtx5ryCA2QXL44Durm.jpg"),
			Overview:    "Obsessive master thief Neil McCauley leads a top-notch crew on various daring heists.",
			ReleaseDate: "1995-12-15",
			VoteAverage: 7.9,
			VoteCount:   6500,
			GenreIDs:    []int{28, 80, 18},
		},
		{
			ID:          348,
			Title:       "Alien",
			PosterPath:  poster("/vfrQk5IPloGg1v9Rzbh2Eg3VGyM.jpg"),
			Overview:    "The crew of the commercial spaceship Nostromo answer a distress call from a desolate planet.",
			ReleaseDate: "1979-05-25",
			VoteAverage: 8.2,
			VoteCount:   13000,
			GenreIDs:    []int{27, 878},
		},
	}

	for _, movie := range movies {
		data, err := json.Marshal(movie)
		if err != nil {
			log.Fatal("marshal movie failed:", err)
		}
		db.Create(&domain.Favorite{
			UserID:    demo.ID,
			MovieID:   movie.ID,
			MovieData: data,
		})
	}

	log.Printf("Seed completed: users=1 favorites=%d", len(movies))
}
