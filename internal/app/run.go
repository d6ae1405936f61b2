package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rmitchellscott/WxCraft/internal/config"
	"github.com/rmitchellscott/WxCraft/internal/fetch"
	"github.com/rmitchellscott/WxCraft/internal/web"
	"github.com/rmitchellscott/WxCraft/internal/web/views"
)

const shutdownTimeout = 10 * time.Second

// Run serves the METAR lookup site until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}
	return Serve(ctx, cfg, ln)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"metarURL", cfg.METARURL,
		"fetchTimeout", cfg.FetchTimeout,
	)

	if err := views.LoadTemplates(); err != nil {
		ln.Close()
		return err
	}

	fetcher := fetch.New(cfg.METARURL, cfg.FetchTimeout)
	mux := web.NewMux(web.NewHandler(fetcher))
	srv := web.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
