package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmitchellscott/WxCraft/internal/config"
)

func TestServe_endToEnd(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "KDEN" {
			w.WriteHeader(http.StatusOK)
			return
		}
		io.WriteString(w, "KDEN 121853Z VRB03KT 10SM CLR 24/M02 A3015\n")
	}))
	defer provider.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Config{
		AppEnv:       "dev",
		HTTPAddr:     ln.Addr().String(),
		METARURL:     provider.URL,
		FetchTimeout: 2 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, ln) }()

	base := "http://" + ln.Addr().String()

	body := get(t, base+"/report?station=kden")
	assert.Contains(t, body, "variable direction wind at 3 knots")
	assert.Contains(t, body, "clear sky")
	assert.Contains(t, body, "temperature 24°C, dewpoint -2°C")

	body = get(t, base+"/report?station=ZZZZ")
	assert.Contains(t, body, "No data for this station. It may be offline or invalid.")

	assert.Contains(t, get(t, base+"/healthz"), `"status":"ok"`)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestRun_invalidAddress(t *testing.T) {
	err := Run(context.Background(), config.Config{HTTPAddr: "127.0.0.1:-1"})
	assert.Error(t, err)
}

func get(t *testing.T, url string) string {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
