package web

import "net/http"

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handleReport)
	mux.HandleFunc("GET /report", h.handleReport)
	mux.HandleFunc("POST /report", h.handleReport)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
}

func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}
