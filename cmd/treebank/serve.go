package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/api"
)

func serveCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve editing sessions over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "`ADDR` to listen on, overrides server.listen",
				EnvVars: []string{"TREEBANK_LISTEN"},
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			cfg := api.Config{
				Logger:           e.logger,
				MaxDocumentBytes: e.cfg.MaxDocumentBytes(),
				HistoryLimit:     e.cfg.History.Limit,
				Analyzer:         e.analyzer(),
				Source:           e.cfg.Morph.Source,
				Lang:             e.cfg.Lang,
			}
			if repo, err := e.repository(); err == nil {
				cfg.Repo = repo
			} else {
				e.logger.Warn("serve: no repository, documents can only be uploaded", "error", err)
			}

			addr := e.cfg.Server.Listen
			if v := c.String("listen"); v != "" {
				addr = v
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(cfg).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				e.logger.Info("serve: listening", "addr", addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			e.logger.Info("serve: shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
