package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/agendago/agenda-go/internal/config"
	"github.com/agendago/agenda-go/internal/handler"
	"github.com/agendago/agenda-go/internal/middleware"
	"github.com/agendago/agenda-go/internal/repository"
	"github.com/agendago/agenda-go/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()

	if level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		logger = logger.Level(level)
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := repository.RunMigrations(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.JWTExpiry)
	contactService := service.NewContactService(contactRepo)

	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("db unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(authService))
		r.Post("/api/auth/logout", authHandler.HandleLogout)
		r.Get("/api/auth/me", authHandler.HandleMe)

		r.Get("/api/contacts", contactHandler.HandleList)
		r.Post("/api/contacts", contactHandler.HandleCreate)
		r.Get("/api/contacts/search", contactHandler.HandleSearch)
		r.Get("/api/contacts/{id}", contactHandler.HandleGet)
		r.Put("/api/contacts/{id}", contactHandler.HandleUpdate)
		r.Delete("/api/contacts/{id}", contactHandler.HandleDelete)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("server stopped")
}
