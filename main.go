package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/rmitchellscott/WxCraft/internal/app"
	"github.com/rmitchellscott/WxCraft/internal/config"
	"github.com/rmitchellscott/WxCraft/internal/console"
	"github.com/rmitchellscott/WxCraft/internal/fetch"
	"github.com/rmitchellscott/WxCraft/internal/logging"
	"github.com/rmitchellscott/WxCraft/internal/station"
)

const appName = "wxcraft"

// Default version is "dev" if not set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	decodeFlag := flag.Bool("decode", false, "Decode a METAR from stdin, -raw or a station argument instead of serving")
	rawFlag := flag.String("raw", "", "Raw METAR to decode (implies -decode)")
	noRawFlag := flag.Bool("no-raw", false, "Hide raw data when decoding")
	flagNoColor := flag.Bool("no-color", false, "Disable color output")
	flag.Parse()

	if *flagNoColor {
		color.NoColor = true // disables colorized output globally
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *decodeFlag || *rawFlag != "" {
		// Decoded output owns stdout.
		slog.SetDefault(logging.New(os.Stderr, cfg, version, appName))

		err := runDecode(ctx, os.Stdout, pipedStdin(), cfg, *rawFlag, flag.Args(), console.Options{NoRaw: *noRawFlag})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			stop()
			os.Exit(1)
		}
		return
	}

	slog.SetDefault(logging.New(os.Stdout, cfg, version, appName))
	slog.Info("starting",
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
	)

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}

	slog.Info("shutting down")
}

// runDecode prints one decoded report. The report comes from raw, then from
// stdin, then from fetching the station named in args.
func runDecode(ctx context.Context, w io.Writer, stdin io.Reader, cfg config.Config, raw string, args []string, opts console.Options) error {
	if raw == "" && stdin != nil {
		line, err := console.ReadReport(stdin)
		if err != nil && !errors.Is(err, console.ErrNoInput) {
			return err
		}
		raw = line
	}

	if raw == "" && len(args) > 0 {
		code, err := station.Parse(args[0])
		if err != nil {
			return err
		}
		raw, err = fetch.New(cfg.METARURL, cfg.FetchTimeout).FetchMETAR(ctx, code)
		if err != nil {
			return err
		}
	}

	if raw == "" {
		return errors.New("no METAR given: pipe one on stdin, pass -raw, or name a station")
	}

	console.Print(w, raw, time.Now().UTC(), opts)
	return nil
}

// pipedStdin returns os.Stdin when data is being piped in, nil otherwise.
func pipedStdin() io.Reader {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return os.Stdin
}
