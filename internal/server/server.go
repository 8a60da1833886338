// Package server exposes the checks over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/guillerg01/date-checker/internal/calendar"
	"github.com/guillerg01/date-checker/internal/checker"
	"github.com/guillerg01/date-checker/internal/citas"
	"github.com/guillerg01/date-checker/internal/config"
	"github.com/guillerg01/date-checker/internal/logger"
	"github.com/guillerg01/date-checker/internal/notifier"
)

// PageChecker runs the read-only consulate page check.
type PageChecker interface {
	Check() *checker.CheckResult
}

// AlertRunner runs the alerting variant of the check.
type AlertRunner interface {
	Run() *checker.AlertResult
}

// AvailabilityFetcher fetches booking widget availability for a date window.
type AvailabilityFetcher interface {
	FetchAvailability(start, end string) (*citas.AvailabilitySummary, error)
}

// Server wires the checkers to HTTP endpoints.
type Server struct {
	cfg      *config.Config
	checker  PageChecker
	alerter  AlertRunner
	citas    AvailabilityFetcher
	notifier notifier.Notifier
}

func New(cfg *config.Config, pc PageChecker, ar AlertRunner, af AvailabilityFetcher, n notifier.Notifier) *Server {
	return &Server{cfg: cfg, checker: pc, alerter: ar, citas: af, notifier: n}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check-consulate", s.handleCheck)
	mux.HandleFunc("/api/cron-check-dates", s.handleCronCheck)
	mux.HandleFunc("/api/citas", s.handleCitas)
	mux.HandleFunc("/api/citas.ics", s.handleCitasICS)
	mux.HandleFunc("/api/test-email", s.handleTestEmail)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	logger.Info("http server listening", logger.Fields{"addr": s.cfg.Listen})
	return http.ListenAndServe(s.cfg.Listen, s.Handler())
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res := s.checker.Check()
	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

func (s *Server) handleCronCheck(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res := s.alerter.Run()
	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

func (s *Server) handleCitas(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := s.fetchWindow(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"availability": summary,
	})
}

func (s *Server) handleCitasICS(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := s.fetchWindow(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="citas.ics"`)
	if _, err := w.Write([]byte(calendar.GenerateICS(summary))); err != nil {
		logger.Error("writing calendar response", nil, err)
	}
}

func (s *Server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := s.notifier.SendTest(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email de prueba enviado.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fetchWindow resolves the start/end query params, falling back to the
// configured default window.
func (s *Server) fetchWindow(r *http.Request) (*citas.AvailabilitySummary, error) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		start = s.cfg.DefaultStartDate
	}
	if end == "" {
		end = s.cfg.DefaultEndDate
	}
	return s.citas.FetchAvailability(start, end)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", nil, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"success":   false,
		"error":     err.Error(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
