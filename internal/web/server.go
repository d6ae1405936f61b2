package web

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rmitchellscott/WxCraft/internal/config"
)

func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(requestLogger(handler), "wxcraft-web"),
		ReadHeaderTimeout: 5 * time.Second,
		// A lookup may wait the full fetch timeout on the provider.
		WriteTimeout: cfg.FetchTimeout + 10*time.Second,
	}
}
