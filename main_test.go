package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmitchellscott/WxCraft/internal/config"
	"github.com/rmitchellscott/WxCraft/internal/console"
	"github.com/rmitchellscott/WxCraft/internal/fetch"
	"github.com/rmitchellscott/WxCraft/internal/station"
)

func init() {
	color.NoColor = true
}

func TestRunDecode_rawArgument(t *testing.T) {
	var out bytes.Buffer
	err := runDecode(context.Background(), &out, nil, config.Config{}, "EGLL 121850Z 24008KT 9999 FEW040 18/11 Q1018", nil, console.Options{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "----- Raw METAR -----")
	assert.Contains(t, out.String(), "Pressure: 1018 hPa | 30.06 inHg")
}

func TestRunDecode_stdin(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader("KMIA 121853Z 09010KT 10SM SCT025TCU 31/24 A3001\n")

	err := runDecode(context.Background(), &out, stdin, config.Config{}, "", nil, console.Options{NoRaw: true})
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "Raw METAR")
	assert.Contains(t, out.String(), "Clouds: Scattered clouds at 2500 feet (towering cumulus)")
}

func TestRunDecode_fetchesStation(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("KBOS 121854Z 05008KT 10SM BKN040 22/14 A3010\n"))
	}))
	defer provider.Close()

	cfg := config.Config{METARURL: provider.URL, FetchTimeout: time.Second}

	var out bytes.Buffer
	err := runDecode(context.Background(), &out, nil, cfg, "", []string{"kbos"}, console.Options{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Station: KBOS")
}

func TestRunDecode_errors(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer provider.Close()

	cfg := config.Config{METARURL: provider.URL, FetchTimeout: time.Second}

	var out bytes.Buffer
	err := runDecode(context.Background(), &out, nil, cfg, "", []string{"12"}, console.Options{})
	var verr *station.ValidationError
	assert.ErrorAs(t, err, &verr)

	err = runDecode(context.Background(), &out, strings.NewReader("\n"), cfg, "", []string{"ZZZZ"}, console.Options{})
	assert.ErrorIs(t, err, fetch.ErrNoData)

	err = runDecode(context.Background(), &out, nil, cfg, "", nil, console.Options{})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
