// Package httpadapter exposes the dashboard API over chi. It owns parameter
// extraction and error-kind to status mapping; all view semantics live in
// the neo service.
package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"neowatch/internal/domain"
	"neowatch/internal/services/neo"
)

type Server struct {
	neos           *neo.Service
	allowedOrigins string
}

func New(neos *neo.Service, allowedOrigins string) *Server {
	return &Server{neos: neos, allowedOrigins: allowedOrigins}
}

// Routes mounts every dashboard endpoint. Static segments are registered
// alongside /neo/{id}; chi prefers the static match.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.cors)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/neo", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Get("/feed", s.handleFeed)
		r.Get("/hazardous", s.handleHazardous)
		r.Get("/stats", s.handleStats)
		r.Get("/closest", s.handleClosest)
		r.Get("/largest", s.handleLargest)
		r.Get("/summary", s.handleSummary)
		r.Get("/summary/{date}", s.handleSummary)
		r.Get("/simple", s.handleSimple)
		r.Get("/simple/{date}", s.handleSimple)
		r.Get("/charts/size-distribution", s.handleSizeDistribution)
		r.Get("/charts/size-distribution/{date}", s.handleSizeDistribution)
		r.Get("/charts/distance-size", s.handleDistanceSize)
		r.Get("/charts/distance-size/{date}", s.handleDistanceSize)
		r.Get("/charts/timeline", s.handleTimeline)
		r.Get("/risk-assessment", s.handleRiskAssessment)
		r.Get("/risk-assessment/{date}", s.handleRiskAssessment)
		r.Get("/highest-risk", s.handleHighestRisk)
		r.Get("/{id}", s.handleByID)
	})
	return r
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.Today(r.Context())
	s.respond(w, res, err)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.neos.Feed(r.Context(), q.Get("start_date"), q.Get("end_date"))
	s.respond(w, res, err)
}

func (s *Server) handleHazardous(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.neos.Hazardous(r.Context(), q.Get("start_date"), q.Get("end_date"))
	s.respond(w, res, err)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.Stats(r.Context())
	s.respond(w, res, err)
}

func (s *Server) handleClosest(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.respond(w, nil, err)
		return
	}
	res, err := s.neos.Closest(r.Context(), r.URL.Query().Get("date"), limit)
	s.respond(w, res, err)
}

func (s *Server) handleLargest(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.respond(w, nil, err)
		return
	}
	res, err := s.neos.Largest(r.Context(), r.URL.Query().Get("date"), limit)
	s.respond(w, res, err)
}

func (s *Server) handleByID(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.ByID(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, res, err)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.Summary(r.Context(), chi.URLParam(r, "date"))
	s.respond(w, res, err)
}

func (s *Server) handleSimple(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.Simple(r.Context(), chi.URLParam(r, "date"))
	s.respond(w, res, err)
}

func (s *Server) handleSizeDistribution(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.SizeDistribution(r.Context(), chi.URLParam(r, "date"))
	s.respond(w, res, err)
}

func (s *Server) handleDistanceSize(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.DistanceSize(r.Context(), chi.URLParam(r, "date"))
	s.respond(w, res, err)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respond(w, nil, domain.Validationf("days %q is not an integer", raw))
			return
		}
		days = n
	}
	res, err := s.neos.Timeline(r.Context(), days)
	s.respond(w, res, err)
}

func (s *Server) handleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	res, err := s.neos.RiskAssessment(r.Context(), chi.URLParam(r, "date"))
	s.respond(w, res, err)
}

func (s *Server) handleHighestRisk(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.respond(w, nil, err)
		return
	}
	q := r.URL.Query()
	res, err := s.neos.HighestRisk(r.Context(), q.Get("start_date"), q.Get("end_date"), limit)
	s.respond(w, res, err)
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validationf("limit %q is not an integer", raw)
	}
	return n, nil
}

// respond maps error kinds to transport status codes; the core never sets
// status codes itself.
func (s *Server) respond(w http.ResponseWriter, payload any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, payload)
		return
	}
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &upstream):
		slog.Error("upstream failure", "error", err)
		writeError(w, http.StatusBadGateway, err)
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
