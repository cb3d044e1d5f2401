package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taste-trail-backend/internal/config"
	"taste-trail-backend/internal/handlers"
	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/services"
	"taste-trail-backend/internal/storage"
	"taste-trail-backend/internal/storage/memory"
	"taste-trail-backend/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run loads configuration, wires the storage backend, services and
// handlers, and serves HTTP until interrupted.
func Run() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Log.Level)

	var store storage.Store
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}

		pgStore := postgres.New(db)
		if err := pgStore.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		store = pgStore
		log.Info().Msg("Database connection established")
	case "memory":
		store = memory.New()
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
	}

	// Services
	userService := services.NewUserService(store, cfg.JWT.Secret)
	restaurantService := services.NewRestaurantService(store)
	listService := services.NewListService(store, store)
	checkInService := services.NewCheckInService(store, store)
	statsService := services.NewStatsService(store)
	photoService, err := services.NewPhotoService(
		store,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create photo service")
	}
	wsHub := services.NewWSHub()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, wsHub)
	listHandler := handlers.NewListHandler(listService, wsHub)
	checkInHandler := handlers.NewCheckInHandler(checkInService, wsHub)
	statsHandler := handlers.NewStatsHandler(statsService)
	photoHandler := handlers.NewPhotoHandler(photoService, wsHub)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"alive": true}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/session", authHandler.CreateSession)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))

			r.Get("/me", authHandler.Me)

			r.Get("/restaurants", restaurantHandler.List)
			r.Post("/restaurants", restaurantHandler.Create)
			r.Get("/restaurants/{id}", restaurantHandler.Get)
			r.Patch("/restaurants/{id}", restaurantHandler.Update)
			r.Delete("/restaurants/{id}", restaurantHandler.Delete)
			r.Get("/restaurants/{id}/checkins", checkInHandler.ListByRestaurant)
			r.Post("/restaurants/{id}/photo-upload", photoHandler.Upload)
			r.Post("/restaurants/{id}/photo-confirm", photoHandler.Confirm)

			r.Get("/lists", listHandler.List)
			r.Post("/lists", listHandler.Create)
			r.Get("/lists/{id}", listHandler.Get)
			r.Patch("/lists/{id}", listHandler.Update)
			r.Delete("/lists/{id}", listHandler.Delete)
			r.Get("/lists/{id}/restaurants", listHandler.GetRestaurants)
			r.Post("/lists/{id}/restaurants", listHandler.AddRestaurant)
			r.Delete("/lists/{listID}/restaurants/{restaurantID}", listHandler.RemoveRestaurant)

			r.Post("/checkins", checkInHandler.Create)
			r.Get("/stats", statsHandler.Get)
		})
	})

	// WebSocket route (token in query, not header)
	r.Get("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Backend).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures the zerolog global logger.
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS for the SPA client.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
