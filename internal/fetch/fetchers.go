package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rmitchellscott/WxCraft/internal/station"
)

var tracer = otel.Tracer("wxcraft/metar-client")

var (
	// ErrNetwork means the provider could not be reached or answered with a non-2xx status.
	ErrNetwork = errors.New("could not reach weather service")
	// ErrNoData means the provider answered with an empty body. It does not
	// distinguish unknown stations from stations that are offline.
	ErrNoData = errors.New("no data for this station")
	// ErrMalformedResponse means the provider answered with text that holds no METAR line.
	ErrMalformedResponse = errors.New("unexpected response from weather service")
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 64 << 10

// metarLineRegex matches the start of a raw report: optional report type,
// station identifier, then a DDHHMMZ time group.
var metarLineRegex = regexp.MustCompile(`^(?:(?:METAR|SPECI)\s+)?[A-Z0-9]{4}\s+\d{6}Z(?:\s|$)`)

// Fetcher requests raw METAR text from a single provider endpoint.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Fetcher for baseURL whose requests give up after timeout.
func New(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchMETAR fetches the raw METAR for a given station code. It makes one
// request and never retries.
func (f *Fetcher) FetchMETAR(ctx context.Context, code station.Code) (string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "fetch-metar")
	span.SetAttributes(attribute.String("station", code.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	body, err := f.fetchData(ctx, code)
	if err != nil {
		return "", err
	}

	report, err := selectReport(body, code)
	if err != nil {
		return "", err
	}

	return report, nil
}

// fetchData issues the GET and returns the trimmed body.
func (f *Fetcher) fetchData(ctx context.Context, code station.Code) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse base url: %w", ErrNetwork, err)
	}
	q := u.Query()
	q.Set("ids", code.String())
	q.Set("format", "raw")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: error fetching METAR: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status code: %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: error reading response: %w", ErrNetwork, err)
	}

	data := strings.TrimSpace(string(body))
	if data == "" {
		return "", fmt.Errorf("%w: station %s", ErrNoData, code)
	}

	slog.DebugContext(ctx, "metar response received", "station", code.String(), "bytes", len(body))
	return data, nil
}

// selectReport picks the line for code out of a possibly multi-line body.
// The first line starting with the station code wins; otherwise the first
// line shaped like a METAR.
func selectReport(body string, code station.Code) (string, error) {
	var fallback string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !metarLineRegex.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "METAR" || fields[0] == "SPECI" {
			fields = fields[1:]
		}
		if fields[0] == code.String() {
			return line, nil
		}
		if fallback == "" {
			fallback = line
		}
	}

	if fallback == "" {
		return "", fmt.Errorf("%w: station %s", ErrMalformedResponse, code)
	}
	return fallback, nil
}
