package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultMETARURL     = "https://aviationweather.gov/api/data/metar"
	DefaultFetchTimeout = 10 * time.Second
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Debug    bool
	HTTPAddr string

	// METARURL is the provider endpoint; the station code is sent as the ids query parameter.
	METARURL     string
	FetchTimeout time.Duration
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	debugStr := strings.TrimSpace(os.Getenv("DEBUG"))
	debug := false
	if debugStr != "" {
		var err error
		debug, err = strconv.ParseBool(debugStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEBUG %q: %w", debugStr, err)
		}
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}
	if debug {
		level = slog.LevelDebug
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		host := strings.TrimSpace(os.Getenv("HOST"))
		if host == "" {
			host = "127.0.0.1"
		}
		port := strings.TrimSpace(os.Getenv("PORT"))
		if port == "" {
			port = "5000"
		}
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q (allowed: 1-65535)", port)
		}
		httpAddr = net.JoinHostPort(host, port)
	}

	metarURL := strings.TrimSpace(os.Getenv("METAR_URL"))
	if metarURL == "" {
		metarURL = DefaultMETARURL
	}
	u, err := url.Parse(metarURL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid METAR_URL %q: %w", metarURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid METAR_URL %q (scheme must be http or https)", metarURL)
	}

	fetchTimeout := DefaultFetchTimeout
	if s := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT")); s != "" {
		fetchTimeout, err = time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", s, err)
		}
		if fetchTimeout <= 0 {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q (must be positive)", s)
		}
	}

	return Config{
		AppEnv:       appEnv,
		LogLevel:     level,
		Debug:        debug,
		HTTPAddr:     httpAddr,
		METARURL:     metarURL,
		FetchTimeout: fetchTimeout,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
