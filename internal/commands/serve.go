package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocket-ledger/backend/internal/config"
	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(os.Stdout)
			if err != nil {
				return err
			}
			defer closeDB()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "listen", ":8080", "address to listen on")

	return cmd
}

// serve runs the API until the context is cancelled.
func serve(ctx context.Context, cfg config.Config, addr string) error {
	if cfg.SeedCategories {
		n, err := models.SeedCategories(models.DB)
		if err != nil {
			return err
		}

		if n > 0 {
			log.Info().Int("count", n).Msg("seeded default categories")
		}
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}

		events.SetPublisher(publisher)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("closing AMQP publisher")
			}
		}()
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing ledger events")
	}

	r, teardown, err := router.Config(cfg)
	if err != nil {
		return err
	}
	defer teardown()
	router.AttachRoutes(cfg, r.Group(cfg.APIURL.Path))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("backend startup complete")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
