// Точка входа Site Module — REST-бэкенд сайта Backbencher.
// Подкоманды: serve (по умолчанию), migrate, gc.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "site-module",
	Short:         "REST backend for the Backbencher site",
	Long:          "Site Module serves user profiles, the site logo, site settings and newsletter subscribers.",
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Site Module завершился с ошибкой", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig загружает конфигурацию и настраивает логгер.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.SetupLogger(cfg), nil
}
