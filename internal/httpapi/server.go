package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tournotify/internal/domain"
	apimw "tournotify/internal/httpapi/middleware"
	"tournotify/internal/jsonx"
	"tournotify/internal/notify"
	"tournotify/internal/repo"
)

// CheckRunner is the orchestrator's entry point; *check.Orchestrator
// satisfies it.
type CheckRunner interface {
	Run(ctx context.Context) domain.Outcome
}

type Server struct {
	Logger   *zap.Logger
	Checker  CheckRunner
	Voice    notify.Notifier // nil when the call channel is not configured
	SMS      notify.Notifier // nil when the sms channel is not configured
	Outcomes repo.OutcomeStore
	Service  string
}

func NewServer(l *zap.Logger, c CheckRunner, voice, sms notify.Notifier, store repo.OutcomeStore, service string) *Server {
	return &Server{Logger: l, Checker: c, Voice: voice, SMS: sms, Outcomes: store, Service: service}
}

func (s *Server) Router(rateRPM, rateBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(apimw.RateLimit(rateRPM, rateBurst))

	r.Get("/", s.handleRoot)
	r.Get("/check", s.handleCheck)
	r.Post("/check", s.handleCheck)
	r.Get("/test-call", s.testHandler(s.Voice, notify.VoiceTestMessage))
	r.Get("/test-sms", s.testHandler(s.SMS, notify.SMSTestMessage))
	r.Get("/history", s.handleHistory)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.Service,
	})
}

// checkResponse is the wire mirror of an Outcome. /check always answers
// 200; failures live in the status field, never in the HTTP code.
type checkResponse struct {
	Status     domain.Status `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Message    string        `json:"message,omitempty"`
	NotifySent *bool         `json:"notify_sent,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	out := s.Checker.Run(r.Context())
	writeJSON(w, http.StatusOK, checkResponse{
		Status:     out.Status,
		Reason:     out.Reason,
		Message:    out.Message,
		NotifySent: out.NotifySent,
	})
}

func (s *Server) testHandler(n notify.Notifier, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if n == nil || !n.Notify(r.Context(), message) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := s.Outcomes.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("history_error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := jsonx.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
