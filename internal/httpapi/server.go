package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/domain"
	apimw "github.com/hamed0406/sitewatch/internal/httpapi/middleware"
	"github.com/hamed0406/sitewatch/internal/metrics"
	"github.com/hamed0406/sitewatch/internal/monitor"
)

// Core is the part of the monitor the handlers rely on.
type Core interface {
	ProbeNow(ctx context.Context, url string) (monitor.Outcome, error)
	ReadAll(ctx context.Context) map[string]domain.ObservedState
}

type Server struct {
	Logger    *zap.Logger
	Core      Core
	PingRPM   int // 0 disables the /ping rate limit
	PingBurst int
	Keys      apimw.Keys // empty disables auth
}

func NewServer(l *zap.Logger, core Core) *Server {
	return &Server{Logger: l, Core: core}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.AllowAll().Handler)
	r.Use(metrics.HTTPMiddleware)
	r.Use(apimw.AccessLog(s.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.With(apimw.RequireAdmin(s.Keys)).
		Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(apimw.RequireAny(s.Keys))
		r.Get("/status", s.handleStatus)
		r.With(apimw.RateLimit(s.PingRPM, s.PingBurst)).Post("/ping", s.handlePing)
	})

	return r
}

type pingPayload struct {
	URL string `json:"url"`
}

type pingResponse struct {
	URL    string         `json:"url"`
	Status domain.Verdict `json:"status"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		// the dashboard client posts {"url": "..."}
		var p pingPayload
		if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&p); err == nil {
			target = p.URL
		}
	}

	// A client hanging up must not cut the probe short and record DOWN.
	ctx := context.WithoutCancel(r.Context())
	out, err := s.Core.ProbeNow(ctx, target)
	if err != nil {
		if errors.Is(err, monitor.ErrInvalidURL) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Logger.Error("ping_failed", zap.String("url", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "probe failed")
		return
	}

	writeJSON(w, http.StatusOK, pingResponse{URL: out.URL, Status: out.Verdict})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Core.ReadAll(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
