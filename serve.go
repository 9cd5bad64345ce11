package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-engine/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// purger is implemented by stores that need expired sessions swept.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP game server",
	Long:  `Starts the engine in server mode, exposing new/key/board/reset over a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		if err := words.Init(cfg.WordsFile, cfg.Board.Cols); err != nil {
			return err
		}
		log.Info().Int("answers", words.Count()).Int("length", words.Default().WordLength()).Msg("word list loaded")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.StoreConfig())
		if err != nil {
			return err
		}
		defer st.Close()
		log.Info().Str("backend", cfg.Store.Backend).Dur("ttl", cfg.Store.TTL).Msg("session store ready")

		if p, ok := st.(purger); ok {
			go janitor(ctx, p, cfg.Store.TTL)
		}

		srv := httpserver.New(st, httpserver.Options{
			Cols:         cfg.Board.Cols,
			Rows:         cfg.Board.Rows,
			Secret:       []byte(cfg.JWTSecret),
			TokenTTL:     cfg.Store.TTL,
			DailySalt:    cfg.DailySalt,
			ClientOrigin: cfg.ClientOrigin,
			Words:        words.Default(),
			Metrics:      metrics.New(prometheus.DefaultRegisterer),
			Gatherer:     prometheus.DefaultGatherer,
		})

		hs := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Msg("starting wordle engine")
			serverErrors <- hs.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ctx.Done():
			log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := hs.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("graceful shutdown did not complete")
				return hs.Close()
			}
			log.Info().Msg("server stopped")
		}
		return nil
	},
}

// janitor sweeps expired sessions every tenth of ttl, capped at one minute.
func janitor(ctx context.Context, p purger, ttl time.Duration) {
	every := ttl / 10
	if every <= 0 || every > time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := p.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("expired sessions purged")
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
}
