package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/config"
	"github.com/foresightmx/foresight/internal/handler"
	"github.com/foresightmx/foresight/internal/mail"
	"github.com/foresightmx/foresight/internal/repository"
	"github.com/foresightmx/foresight/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var (
		store repository.ProfileStore
		auth  repository.Authenticator
	)
	if cfg.UseSupabase() {
		repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Supabase")
		}
		store, auth = repo, repo
		log.Info().Msg("Using Supabase storage")
	} else {
		local, err := repository.OpenLocal(cfg.LocalDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open local store")
		}
		defer local.Close()
		store, auth = local, local
		log.Info().Str("path", cfg.LocalDBPath).Msg("Using local storage")
	}

	var mailer mail.Sender
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPSender(cfg.SMTP)
	} else {
		log.Info().Msg("SMTP not configured, summary emails disabled")
	}

	tracker := service.NewExpenseTracker(store, auth, category.Builtin(), mailer)
	sessions := handler.NewSessionManager()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	handler.RegisterRoutes(e, tracker, sessions)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
