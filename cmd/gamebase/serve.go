package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erazemk/gamebase/internal/formtoken"
	"github.com/erazemk/gamebase/internal/store"
	"github.com/erazemk/gamebase/internal/web"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the catalog web server. The database and its schema are created
on first start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: :8080)")
}

func runServe(ctx context.Context) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(cfg.LogPath, level)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := openDatabase(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return err
	}
	defer database.Close()

	slog.Info("database ready", "path", cfg.DB)

	// Form token key, derived from a secret generated on first start.
	secret, err := store.GetInstanceSecret(ctx, database)
	if err != nil {
		slog.Error("failed to get instance secret", "error", err)
		return err
	}
	tokens, err := formtoken.NewSigner(secret)
	if err != nil {
		return err
	}

	handler, err := web.NewRouter(database, tokens)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(sctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return err
	}

	<-done
	slog.Info("server stopped, closing database")
	return nil
}
