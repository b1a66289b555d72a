// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/estlin/paperbill/internal/model"
)

// Settings is the resolved application configuration.
type Settings struct {
	DatabasePath   string
	ExportDir      string
	Currency       string
	DefaultTaxRate string
	Business       model.Party
}

// Load resolves settings from viper (config file, environment, bound
// flags), applying defaults for anything unset.
func Load() Settings {
	s := Settings{
		DatabasePath:   viper.GetString("database.path"),
		ExportDir:      viper.GetString("export.dir"),
		Currency:       viper.GetString("currency"),
		DefaultTaxRate: viper.GetString("defaults.tax_rate"),
		Business: model.Party{
			Name:    viper.GetString("business.name"),
			Email:   viper.GetString("business.email"),
			Phone:   viper.GetString("business.phone"),
			Address: viper.GetString("business.address"),
		},
	}

	if s.DatabasePath == "" {
		s.DatabasePath = "$HOME/.local/share/paperbill/paperbill.db"
	}
	s.DatabasePath = ExpandPath(s.DatabasePath)

	if s.ExportDir == "" {
		s.ExportDir = "."
	}
	s.ExportDir = ExpandPath(s.ExportDir)

	if s.Currency == "" {
		s.Currency = "Rs."
	}
	if s.DefaultTaxRate == "" {
		s.DefaultTaxRate = "0"
	}

	return s
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
