// Package main запускает HTTP-сервер сайта «Золотой Улей».
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/golden-hive/internal/config"
	"github.com/mmeshcher/golden-hive/internal/handler"
	"github.com/mmeshcher/golden-hive/internal/markup"
	"github.com/mmeshcher/golden-hive/internal/middleware"
	"github.com/mmeshcher/golden-hive/internal/page"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, kind, err := storage.Open(ctx, storage.Options{
		DatabaseURI:   cfg.DatabaseURI,
		RedisAddress:  cfg.RedisAddress,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		sugar.Fatalw("storage initialization error", "backend", kind, "error", err.Error())
	}
	defer backend.Close()
	sugar.Infow("storage ready", "backend", kind)

	content, err := markup.Default()
	if err != nil {
		sugar.Fatalw("markup parse error", "error", err.Error())
	}
	sugar.Infow("markup loaded", "menu_items", len(content.Menu), "seed_reviews", len(content.Seeds))

	pages := page.NewRegistry(storage.NewStore(backend, logger), content, page.Options{
		CloseDelay: cfg.BookingCloseDelay,
		MaxPages:   cfg.MaxPages,
		IdleTTL:    cfg.PageIdleTTL,
	}, logger)

	if cfg.CookieSecret == "" {
		sugar.Warn("COOKIE_SECRET is not set, visitor cookies will not survive a restart")
	}
	visitorMiddleware := middleware.NewVisitorMiddleware(cfg.CookieSecret)
	h := handler.NewHandler(pages, logger, visitorMiddleware, markup.HTML())

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting golden hive server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Infow("server stopped gracefully", "pages", pages.Len())
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
