// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/wiki-watch/internal/api"
	"github.com/pdiddy/wiki-watch/internal/content"
	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/internal/watchlist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host tabs for the extension's background process",
	Long: `Serve starts the HTTP server. The background process opens a tab per host
page (POST /api/tabs), then sends insertWrapper and contextSearch commands
over the tab's WebSocket (/api/tabs/{id}/ws) or POST /api/tabs/{id}/messages.
Search, clear, and save events of the injected UI are posted to the tab's
search, clear, and save endpoints; GET /tabs/{id} returns the page.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := watchlist.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()
	list := watchlist.New(store)

	searcher := search.NewWikipedia(nil, cfg.Search, logger)
	manager := content.NewManager(searcher, list, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(manager, list, logger),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr, "host", searcher.Host(), "db", store.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func init() {
	serveCmd.Flags().String("addr", ":8990", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
