package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"egoroff.spb.ru/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var httpAddr string

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "Address for the HTTP server (e.g. :4200), overrides the config")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}

	srv, err := server.NewServer(cfg, siteMapLoader(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.Shutdown()
	return <-errCh
}
