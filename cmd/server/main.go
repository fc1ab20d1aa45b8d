package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/analyzer"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/config"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/db"
	httpapi "github.com/Lual007/Intermediate-API---Squad-06/internal/http"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "sentimento-api").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	var an analyzer.Analyzer
	if cfg.AnaliseURL == "" {
		an = analyzer.MockAnalyzer{}
		logger.Info().Msg("using mock sentiment analyzer")
	} else {
		an = analyzer.NewHTTPAnalyzer(cfg.AnaliseURL, cfg.AnaliseTimeout)
	}

	svc := &service.SentimentService{
		Store:    store,
		Analyzer: an,
		Modelo:   cfg.Modelo,
		Logger:   logger,
	}

	router := httpapi.Router(cfg, store, svc, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
