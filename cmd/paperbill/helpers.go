package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/estlin/paperbill/internal/app"
	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/config"
	"github.com/estlin/paperbill/internal/export"
	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/storage"
)

// session bundles everything one command execution needs: the open store,
// the controller, and the resolved settings.
type session struct {
	settings config.Settings
	kv       *storage.SQLiteKV
	store    *storage.Store
	app      *app.App
}

func (s *session) close() error {
	return s.kv.Close()
}

// openSession loads settings, opens the database, and reads the record
// sequence for kind.
func openSession(ctx context.Context, kind model.Kind) (*session, error) {
	settings := config.Load()

	kv, err := storage.NewSQLiteKV(settings.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := storage.Open(ctx, kv, kind)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	exporter := export.NewExporter(settings.ExportDir, settings.Currency)
	prompter := cli.NewPrompter(nil, nil)

	slog.Debug("session open",
		"kind", string(kind),
		"database", settings.DatabasePath,
		"exportDir", settings.ExportDir)

	return &session{
		settings: settings,
		kv:       kv,
		store:    store,
		app:      app.New(store, exporter, prompter.Confirm),
	}, nil
}

// parseItemSpec parses one --item flag value of the form
// "description:quantity:rate". The description may itself contain colons;
// the last two fields are always quantity and rate.
func parseItemSpec(spec string) (model.RawItem, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return model.RawItem{}, fmt.Errorf("invalid item %q: want description:quantity:rate", spec)
	}

	return model.RawItem{
		Description: strings.Join(parts[:len(parts)-2], ":"),
		Quantity:    strings.TrimSpace(parts[len(parts)-2]),
		Rate:        strings.TrimSpace(parts[len(parts)-1]),
	}, nil
}

// parseItemSpecs parses every --item flag value.
func parseItemSpecs(specs []string) ([]model.RawItem, error) {
	items := make([]model.RawItem, 0, len(specs))
	for _, spec := range specs {
		item, err := parseItemSpec(spec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseDate parses a YYYY-MM-DD flag value; empty means "unset".
func parseDate(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", flag, value)
	}
	return t, nil
}

// rawItemsFromDocument converts stored line items back into editable form
// rows.
func rawItemsFromDocument(doc model.Document) []model.RawItem {
	items := make([]model.RawItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, model.RawItem{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.String(),
		})
	}
	return items
}
