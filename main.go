// apps/go-server/main.go
//
// Entry point for the mini-games server.
// Responsibilities:
//   - Load .env, parse flags/env into Config, set the log level.
//   - Load word lists and bootstrap every game.
//   - Open and migrate the results database.
//   - Serve HTTP until SIGINT/SIGTERM, then stop running plays.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/minigames/apps/go-server/internal/catalog"
	"github.com/robalobadob/minigames/apps/go-server/internal/httpserver"
	"github.com/robalobadob/minigames/apps/go-server/internal/results"
	"github.com/robalobadob/minigames/apps/go-server/internal/store"
	"github.com/robalobadob/minigames/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func serve(ctx context.Context, cfg *Config) error {
	lvl, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	if err := words.Init(); err != nil {
		return err
	}
	a, c := words.Stats()
	log.Info().Int("anagram", a).Int("colors", c).Msg("word lists loaded")

	cat, err := catalog.New(catalog.Definitions(words.Anagram(), words.Colors()))
	if err != nil {
		return err
	}

	db, err := results.OpenDB(cfg.db)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := results.Migrate(db); err != nil {
		return err
	}

	s := httpserver.New(httpserver.Options{
		Secret:       []byte(cfg.jwtSecret),
		TokenTTL:     cfg.tokenTTL,
		Frame:        cfg.frame,
		PlayTimeout:  cfg.playTimeout,
		CallbackURL:  cfg.callbackURL,
		ClientOrigin: cfg.clientOrigin,
	}, cat, store.NewMemoryStore(), results.NewStore(db))
	defer s.Close()
	go s.Reap(ctx)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           s.Handler(),
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting go-server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
