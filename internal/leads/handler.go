package leads

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

// Handler handles HTTP requests for lead submissions
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SubmitEarlyAccess handles POST /v1/leads/early-access requests
func (h *Handler) SubmitEarlyAccess(w http.ResponseWriter, r *http.Request) {
	var sub EarlyAccessSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode early access request", "error", err)
		writeOutcome(w, http.StatusBadRequest, Outcome{Success: false, Error: "Invalid request body"})
		return
	}

	outcome := h.service.SubmitEarlyAccess(r.Context(), &sub, clientIP(r))
	writeOutcome(w, http.StatusOK, outcome)
}

// SubmitDemoSchedule handles POST /v1/leads/demo-schedule requests
func (h *Handler) SubmitDemoSchedule(w http.ResponseWriter, r *http.Request) {
	var sub DemoScheduleSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode demo schedule request", "error", err)
		writeOutcome(w, http.StatusBadRequest, Outcome{Success: false, Error: "Invalid request body"})
		return
	}

	outcome := h.service.SubmitDemoSchedule(r.Context(), &sub, clientIP(r))
	writeOutcome(w, http.StatusOK, outcome)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// writeOutcome always answers with the uniform {success, error?} shape; a
// rejected submission is still a 200 so the site can render the message.
func writeOutcome(w http.ResponseWriter, status int, outcome Outcome) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(outcome)
}

// clientIP extracts the best-effort source address. chi's RealIP middleware
// has already folded X-Forwarded-For / X-Real-Ip into RemoteAddr; an
// unparseable address yields "" and shares the unknown rate-limit bucket.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if ip := net.ParseIP(r.RemoteAddr); ip != nil {
		return ip.String()
	}
	return ""
}
