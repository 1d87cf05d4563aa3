// Server entry point: loads configuration, connects the database pool, runs
// migrations, wires the feature handlers onto the router and serves HTTP with
// graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/drimcity/drimcity-go/accounts"
	"github.com/drimcity/drimcity-go/auth"
	"github.com/drimcity/drimcity-go/config"
	"github.com/drimcity/drimcity-go/db"
	"github.com/drimcity/drimcity-go/posts"
	"github.com/drimcity/drimcity-go/web"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// .env is a development convenience; production sets variables directly.
	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg(".env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	accountStore := accounts.NewPgStore(pool)
	postStore := posts.NewPgStore(pool)

	hasher := auth.NewPasswordHasher(*cfg.PasswordHash)
	issuer := auth.NewJwtIssuer(*cfg.Auth)
	requireAuth := auth.Middleware(cfg.Auth)

	authHandlers := auth.NewHandlers(auth.NewService(accountStore, hasher, issuer))
	accountHandlers := accounts.NewHandlers(accountStore)
	postHandlers := posts.NewHandlers(posts.NewService(postStore), requireAuth)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(web.RequestLogger(logger))
	r.Use(web.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The route table is an explicit, statically inspectable list; features
	// never self-register through side effects.
	registrars := []func(chi.Router){
		authHandlers.Register,
		accountHandlers.Register,
		postHandlers.Register,
	}
	for _, register := range registrars {
		register(r)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
