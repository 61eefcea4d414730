package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorplan-analyzer/config"
	httpapi "floorplan-analyzer/internal/api/http"
	"floorplan-analyzer/internal/api/telegram"
	"floorplan-analyzer/internal/container"
	"floorplan-analyzer/internal/infrastructure/logger"
	"floorplan-analyzer/internal/infrastructure/storage"
	"floorplan-analyzer/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.Setup(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// Выбираем движок анализа
	analyzer, err := vision.NewAnalyzer(cfg.Engine, cfg.Params)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}

	// Хранилище сессий чатов и сервисы приложения
	sessionRepo := storage.NewMemorySessionRepository(cfg.BotWidth, cfg.BotHeight)
	appContainer := container.New(sessionRepo, analyzer, cfg.MaxDimension, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, lg)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			if err := bot.Run(ctx); err != nil {
				lg.Error("bot stopped", "error", err)
			}
		}()
	}

	handler := httpapi.NewHandler(appContainer.AnalysisService, cfg.MaxBodyBytes, lg)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error("http shutdown", "error", err)
		}
	}()

	lg.Info("server starting", slog.String("addr", cfg.Addr), slog.String("engine", analyzer.Name()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	lg.Info("server stopped")
}
