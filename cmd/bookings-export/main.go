// Package main выгружает бронирования всех посетителей в XLSX-файл.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/config"
	"github.com/mmeshcher/golden-hive/internal/export"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	var outPath string
	flag.StringVar(&outPath, "o", "bookings.xlsx", "output .xlsx file")

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	if cfg.DatabaseURI == "" && cfg.RedisAddress == "" {
		sugar.Fatal("export needs a shared backend: set DATABASE_URI or REDIS_ADDRESS")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, kind, err := storage.Open(ctx, storage.Options{
		DatabaseURI:   cfg.DatabaseURI,
		RedisAddress:  cfg.RedisAddress,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		sugar.Fatalw("storage initialization error", "backend", kind, "error", err.Error())
	}
	defer backend.Close()

	rows, err := export.Collect(ctx, backend, logger)
	if err != nil {
		sugar.Fatalw("collect bookings error", "error", err.Error())
	}

	f, err := os.Create(outPath)
	if err != nil {
		sugar.Fatalw("create output error", "path", outPath, "error", err.Error())
	}
	defer f.Close()

	if err := export.WriteXLSX(f, rows); err != nil {
		sugar.Fatalw("write xlsx error", "error", err.Error())
	}

	sugar.Infow("bookings exported", "path", outPath, "rows", len(rows), "backend", kind)
}
