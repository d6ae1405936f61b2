package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rmitchellscott/WxCraft/internal/fetch"
	"github.com/rmitchellscott/WxCraft/internal/metar"
	"github.com/rmitchellscott/WxCraft/internal/station"
	"github.com/rmitchellscott/WxCraft/internal/web/views"
)

// Messages shown to the user when a lookup fails.
const (
	msgNetwork   = "Could not reach the weather service."
	msgNoData    = "No data for this station. It may be offline or invalid."
	msgMalformed = "The weather service returned an unexpected response."

	msgWrongLength    = "Station codes are exactly 4 letters, for example KJFK."
	msgNonAlphabetic  = "Station codes may only contain the letters A to Z."
	msgInvalidStation = "Enter a 4-letter ICAO station code."
)

type reportFetcher interface {
	FetchMETAR(ctx context.Context, code station.Code) (string, error)
}

type Handler struct {
	fetcher reportFetcher
}

func NewHandler(fetcher reportFetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	writePage(w, func(buf *bytes.Buffer) error {
		return views.RenderForm(buf, &views.FormData{})
	})
}

// handleReport runs a lookup: validate, fetch once, decode, render. Every
// outcome the user can cause is answered with 200 and a page.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	input := stationInput(r)

	code, err := station.Parse(input)
	if err != nil {
		slog.DebugContext(r.Context(), "station rejected", "input", input, "error", err)
		writePage(w, func(buf *bytes.Buffer) error {
			return views.RenderForm(buf, &views.FormData{Station: input, Error: validationMessage(err)})
		})
		return
	}

	raw, err := h.fetcher.FetchMETAR(r.Context(), code)
	if err != nil {
		slog.WarnContext(r.Context(), "metar fetch failed", "station", code.String(), "error", err)
		writePage(w, func(buf *bytes.Buffer) error {
			return views.RenderError(buf, &views.ErrorData{Station: code.String(), Message: fetchMessage(err)})
		})
		return
	}

	report := metar.Decode(raw)
	if len(report.Unrecognized) > 0 {
		slog.DebugContext(r.Context(), "decode warning: tokens skipped",
			"station", code.String(),
			"tokens", report.Unrecognized,
		)
	}

	writePage(w, func(buf *bytes.Buffer) error {
		return views.RenderReport(buf, views.NewReportData(code.String(), report))
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// stationInput reads the station field from the query or form body. Older
// links name the field icao, which is still accepted.
func stationInput(r *http.Request) string {
	if v := r.FormValue("station"); v != "" {
		return v
	}
	return r.FormValue("icao")
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, station.ErrWrongLength):
		return msgWrongLength
	case errors.Is(err, station.ErrNonAlphabetic):
		return msgNonAlphabetic
	default:
		return msgInvalidStation
	}
}

func fetchMessage(err error) string {
	switch {
	case errors.Is(err, fetch.ErrNoData):
		return msgNoData
	case errors.Is(err, fetch.ErrMalformedResponse):
		return msgMalformed
	default:
		return msgNetwork
	}
}

// writePage renders into a buffer first so a template failure can still be
// answered with a clean 500.
func writePage(w http.ResponseWriter, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Error("page render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("write response failed", "error", err)
	}
}
