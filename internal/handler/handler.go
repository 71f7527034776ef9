package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/middleware"
	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/Lovrevar/Landmark-sub006/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps the error taxonomy to HTTP statuses. Partial writes are
// surfaced as 500 with the failing step in the message; invalid
// transitions are client errors.
func statusFor(err error) int {
	var partial *models.PartialWriteError
	switch {
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.As(err, &partial):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Register handles operator registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Login handles operator authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ProjectFunding returns one project's funding summary
func (h *Handler) ProjectFunding(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	summary, err := h.svc.ProjectFunding(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// AllFunding returns per-project summaries and the global rollup
func (h *Handler) AllFunding(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.AllProjectFunding(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// Notifications returns the unified notification stream. ?include=all
// adds completed and dismissed entries; ?due_before=YYYY-MM-DD restricts
// the listing to entries due before that date.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	includeAll := r.URL.Query().Get("include") == "all"
	var dueBefore *time.Time
	if v := r.URL.Query().Get("due_before"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid due_before date")
			return
		}
		dueBefore = &parsed
	}

	list, err := h.svc.Notifications(r.Context(), includeAll, dueBefore)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// NotificationStats returns dashboard counters
func (h *Handler) NotificationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.NotificationStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Dismiss dismisses a bank installment notification
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	actorID, err := middleware.OperatorID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.svc.Dismiss(r.Context(), scheduleID, actorID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// Complete marks a notification completed (bank installment completed,
// subcontractor milestone paid)
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	source := models.NotificationSource(vars["source"])

	if err := h.svc.Complete(r.Context(), source, scheduleID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// RecordBankPayment records a payment against the credit behind an
// installment
func (h *Handler) RecordBankPayment(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	var req models.BankPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordBankPayment(r.Context(), scheduleID, req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// RecordSubcontractorPayment records a wire payment for a milestone
func (h *Handler) RecordSubcontractorPayment(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	var req models.SubcontractorPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordSubcontractorPayment(r.Context(), milestoneID, req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, result)
}
