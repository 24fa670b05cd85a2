// Package export выгружает журнал бронирований всех посетителей в XLSX.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

// SheetName — имя листа с бронированиями.
const SheetName = "Bookings"

const visitorKeyPrefix = "visitor:"

// Row — бронирование вместе с идентификатором посетителя.
type Row struct {
	Visitor string
	model.Booking
}

// Collect читает журналы бронирований всех посетителей из бэкенда.
// Повреждённые журналы пропускаются с предупреждением.
func Collect(ctx context.Context, backend storage.Backend, logger *zap.Logger) ([]Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	keys, err := backend.Keys(ctx, visitorKeyPrefix+"*:"+storage.KeyBookings)
	if err != nil {
		return nil, fmt.Errorf("list booking keys: %w", err)
	}

	var rows []Row
	for _, key := range keys {
		raw, err := backend.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}

		var bookings []model.Booking
		if err := json.Unmarshal(raw, &bookings); err != nil {
			logger.Warn("skip corrupted booking log", zap.String("key", key), zap.Error(err))
			continue
		}

		visitor := visitorFromKey(key)
		for _, b := range bookings {
			rows = append(rows, Row{Visitor: visitor, Booking: b})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	return rows, nil
}

func visitorFromKey(key string) string {
	id := strings.TrimPrefix(key, visitorKeyPrefix)
	return strings.TrimSuffix(id, ":"+storage.KeyBookings)
}

// WriteXLSX записывает строки в книгу с одним листом.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("new stream writer: %w", err)
	}

	header := []any{"visitor", "package", "name", "email", "phone", "date", "people", "created_at"}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		row := []any{
			r.Visitor, r.Package, r.Name, r.Email, r.Phone, r.Date, r.People,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
