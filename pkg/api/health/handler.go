// Package health exposes the engine service over JSON endpoints. Handlers
// stay thin: decode, delegate, map sentinel errors to status codes. Auth,
// uploads and report rendering live outside this service.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"finhealth/pkg/core/engine"
	"finhealth/pkg/core/validate"
	"finhealth/pkg/models"
)

// Writers covers the ingest-side persistence the handlers need directly.
type Writers struct {
	SaveCompany   func(ctx context.Context, c *models.Company) error
	SaveStatement func(ctx context.Context, p *models.StatementPeriod) error
}

// Handler serves the analysis endpoints over one engine service.
type Handler struct {
	svc     *engine.Service
	writers Writers
}

// NewHandler creates the handler set.
func NewHandler(svc *engine.Service, writers Writers) *Handler {
	return &Handler{svc: svc, writers: writers}
}

// Register wires all endpoints onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/companies", h.HandleSaveCompany)
	mux.HandleFunc("/api/statements", h.HandleSaveStatement)
	mux.HandleFunc("/api/analyze", h.HandleAnalyze)
	mux.HandleFunc("/api/credit/assess", h.HandleAssessCredit)
	mux.HandleFunc("/api/forecast", h.HandleForecast)
	mux.HandleFunc("/api/recommendations", h.HandleRecommendations)
}

func (h *Handler) HandleSaveCompany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var c models.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.ID == "" {
		http.Error(w, "company id is required", http.StatusBadRequest)
		return
	}
	if err := h.writers.SaveCompany(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "id": c.ID})
}

func (h *Handler) HandleSaveStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var p models.StatementPeriod
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.CompanyID == "" || p.PeriodEnd.IsZero() {
		http.Error(w, "company_id and period_end are required", http.StatusBadRequest)
		return
	}
	// Consistency issues are warnings, not rejections: the null-ratio policy
	// downstream degrades precision rather than refusing data.
	report := validate.CheckPeriod(&p)
	if !report.Passed {
		log.WithFields(log.Fields{
			"company": p.CompanyID,
			"issues":  report.Issues,
		}).Warn("statement period has consistency issues")
	}
	if err := h.writers.SaveStatement(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "saved", "warnings": report.Issues})
}

// HandleAnalyze computes and scores the latest period's metrics.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireCompany(w, r)
	if !ok {
		return
	}
	m, err := h.svc.ComputeMetrics(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) HandleAssessCredit(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireCompany(w, r)
	if !ok {
		return
	}
	a, err := h.svc.AssessCredit(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireCompany(w, r)
	if !ok {
		return
	}
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil {
		http.Error(w, "months query parameter must be an integer", http.StatusBadRequest)
		return
	}
	f, err := h.svc.GenerateForecast(r.Context(), companyID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireCompany(w, r)
	if !ok {
		return
	}
	language := r.URL.Query().Get("language")
	recs, err := h.svc.GenerateRecommendations(r.Context(), companyID, language)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func requireCompany(w http.ResponseWriter, r *http.Request) (string, bool) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		http.Error(w, "company_id query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return companyID, true
}

// writeError maps sentinel errors onto status codes; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrIncompleteData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidHorizon):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrBusy):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}
