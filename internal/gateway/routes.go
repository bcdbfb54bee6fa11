package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/sideband"
	"github.com/jdmarket/colibri/internal/whatsapp"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /webhook", s.handleVerify)
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /admin/send", s.handleAdminSend)
	mux.HandleFunc("GET /admin/sessions", s.handleAdminSessions)
	mux.HandleFunc("GET /admin/transcript", s.handleAdminTranscript)
	mux.HandleFunc("GET /_test/send", s.handleTestSend)

	mux.HandleFunc("/", s.handleRoot)
}

// handleVerify completes the Cloud API webhook subscription handshake:
// echo hub.challenge when the verify token matches, 403 otherwise.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && token == s.cfg.WhatsApp.VerifyToken {
		s.log.Info().Msg("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}
	w.WriteHeader(http.StatusForbidden)
}

// handleWebhook ingests provider notifications. It always acknowledges
// with 200 so the provider never retries, whatever happens internally.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.log.Warn().Err(err).Msg("unparseable webhook payload")
		return
	}

	for _, ev := range payload.Normalize() {
		s.engine.Handle(r.Context(), ev)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type adminSendRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// handleAdminSend sends a manual outbound text, for backoffice use.
func (s *Server) handleAdminSend(w http.ResponseWriter, r *http.Request) {
	var req adminSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to and text are required"})
		return
	}

	if err := s.messenger.Send(r.Context(), domain.TextRequest(req.To, req.Text, "")); err != nil {
		s.log.Error().Err(err).Str("to", req.To).Msg("admin send failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "to": req.To})
}

// handleAdminSessions dumps live sessions for ops inspection.
func (s *Server) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeJSON(w, http.StatusOK, map[string]any{"sessions": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.sessions.Dump()})
}

// handleAdminTranscript returns recent transcript rows for one user.
func (s *Server) handleAdminTranscript(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "transcript recording is disabled"})
		return
	}

	user := r.URL.Query().Get("user")
	if user == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user is required"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := s.recorder.Recent(r.Context(), user, limit)
	if err != nil {
		s.log.Error().Err(err).Str("user", user).Msg("transcript query failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "transcript query failed"})
		return
	}
	if rows == nil {
		rows = []sideband.TranscriptRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transcript": rows})
}

// handleTestSend is a manual smoke-test endpoint, hidden unless enabled.
func (s *Server) handleTestSend(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Admin.EnableTestEndpoint {
		http.NotFound(w, r)
		return
	}

	to := r.URL.Query().Get("to")
	text := r.URL.Query().Get("text")
	if to == "" || text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing to or text"})
		return
	}

	if err := s.messenger.Send(r.Context(), domain.TextRequest(to, text, "")); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "to": to})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("<pre>Nothing to see here.\nCheckout README.md to start.</pre>"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
