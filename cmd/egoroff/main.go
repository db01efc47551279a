package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"egoroff.spb.ru/internal/server"
	"egoroff.spb.ru/pkg/config"
	"egoroff.spb.ru/pkg/navigation"
	"egoroff.spb.ru/static"
)

var (
	rootCmd = &cobra.Command{
		Use:           "egoroff",
		Short:         "egoroff.spb.ru site server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal outside development.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			return nil
		},
	}
	configPath  string
	siteMapPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&siteMapPath, "site-map", "m", "", "Site map file overriding the configured one")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(navCmd)
	rootCmd.AddCommand(sitemapCmd)
	rootCmd.AddCommand(mcpCmd)
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if siteMapPath != "" {
		cfg.SiteMap = siteMapPath
	}
	return cfg, cfg.Validate()
}

// siteMapLoader reads the configured site map file, or the embedded one when
// none is configured.
func siteMapLoader(cfg config.Config) server.Loader {
	if cfg.SiteMap == "" {
		return func() (*navigation.SiteSection, error) {
			return navigation.LoadFS(static.FS, static.SiteMapName)
		}
	}
	path := cfg.SiteMap
	return func() (*navigation.SiteSection, error) {
		return navigation.LoadFile(path)
	}
}

// buildGraph loads the site map once for the offline commands.
func buildGraph() (*navigation.Graph, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	root, err := siteMapLoader(cfg)()
	if err != nil {
		return nil, cfg, err
	}
	return navigation.BuildWithOptions(root, navigation.Options{Brand: cfg.Brand}), cfg, nil
}
