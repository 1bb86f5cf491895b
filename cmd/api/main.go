package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"filmoteka/internal/config"
	"filmoteka/internal/database"
	"filmoteka/internal/middleware"
	"filmoteka/internal/modules/auth"
	"filmoteka/internal/modules/catalog"
	"filmoteka/internal/modules/favorites"
	"filmoteka/internal/modules/notification"
	"filmoteka/internal/modules/realtime"
	"filmoteka/internal/modules/share"
	jwtsvc "filmoteka/internal/pkg/jwt"
	"filmoteka/internal/pkg/response"
	"filmoteka/internal/repository"
	"filmoteka/internal/session"
)

func main() {
	// .env опционален: в контейнере конфигурация приходит из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	sharedListRepo := repository.NewSharedListRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	accounts := auth.NewAccounts(userRepo)
	hub := realtime.NewHub()
	registry := session.NewRegistry(accounts, favoriteRepo, hub)

	catalogClient := catalog.NewClient(cfg.TMDBBaseURL, cfg.ImageBaseURL, cfg.TMDBAPIKey)
	shareService := share.NewService(sharedListRepo, cfg.ShareBaseURL)

	authHandler := auth.NewHandler(registry, j)
	catalogHandler := catalog.NewHandler(catalogClient)
	favoritesHandler := favorites.NewHandler(registry, favoriteRepo)
	notificationHandler := notification.NewHandler(registry)
	shareHandler := share.NewHandler(shareService, registry)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		shareHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			favoritesHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			shareHandler.RegisterProtectedRoutes(protected)

			protected.GET("/ws", func(c *gin.Context) {
				userID := c.GetString("user_id")
				if err := hub.ServeWS(c.Writer, c.Request, userID); err != nil {
					response.Error(c, http.StatusBadRequest, "WS_UPGRADE_FAILED", "WebSocket upgrade failed")
				}
			})
		}
	}

	log.Printf("listening addr=%s env=%s", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
