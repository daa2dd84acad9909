package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/sergioaramos/mistral-doc-extractor/internal/common"
	"github.com/sergioaramos/mistral-doc-extractor/internal/extract"
	"github.com/sergioaramos/mistral-doc-extractor/internal/server"
	"github.com/sergioaramos/mistral-doc-extractor/internal/webhook"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engineLog := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	extractor := extract.NewHTTPExtractor(cfg.Extractor.URL, cfg.Extractor.APIKey, cfg.Extractor.Timeout, engineLog)
	notifier := webhook.NewNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout, engineLog)

	svc := server.NewService(logger, cfg, extractor, notifier, engineLog)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	log.Infof("HTTP serving on %s", cfg.Server.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
