package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"whatsapp-inbox/config"
	"whatsapp-inbox/migrations"
	"whatsapp-inbox/paths"
	"whatsapp-inbox/storage"
	"whatsapp-inbox/webhook"
)

func main() {
	config.LoadDotEnv()

	level, err := zerolog.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if err := paths.EnsureDataDirectories(); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directories")
	}

	// initialize database and apply pending migrations
	db, err := storage.InitDB(paths.InboxDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init DB")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get DB handle")
	}
	defer sqlDB.Close()

	if err := migrations.Up(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	store := storage.NewStore(db)
	log.Info().Msg("message storage initialized")

	// webhook ingestion endpoint
	webhookConfig := webhook.LoadConfig()
	if webhookConfig.Secret == "" {
		log.Warn().Msg("WHATSAPP_WEBHOOK_SECRET not set, all deliveries will be rejected")
	}
	handler := webhook.NewHandler(store, webhookConfig, log)

	mux := http.NewServeMux()
	mux.Handle("/api/webhook", handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	port := config.GetEnv("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("webhook server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// wait for interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
