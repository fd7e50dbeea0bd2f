// Package server exposes the engine over HTTP: assessment session
// endpoints, report generation and retrieval, share links and
// comparisons, plus health and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talent-engine/internal/common/config"
	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/common/logger"
	"talent-engine/internal/common/validation"
	"talent-engine/internal/models"
	"talent-engine/internal/service"
)

type Server struct {
	httpServer  *http.Server
	assessments *service.AssessmentService
	reports     *service.ReportService
	logger      logger.Logger
}

func New(cfg config.ServerConfig, assessments *service.AssessmentService, reports *service.ReportService, log logger.Logger) *Server {
	s := &Server{
		assessments: assessments,
		reports:     reports,
		logger:      log.WithFields(map[string]interface{}{"component": "http-server"}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/assessments", s.handleStartAssessment)
	mux.HandleFunc("PUT /api/v1/assessments/{testId}/answers", s.handleSaveAnswers)
	mux.HandleFunc("POST /api/v1/assessments/{testId}/complete", s.handleCompleteAssessment)
	mux.HandleFunc("GET /api/v1/assessments/{testId}/progress", s.handleProgress)

	mux.HandleFunc("POST /api/v1/reports", s.handleGenerateReport)
	mux.HandleFunc("GET /api/v1/reports", s.handleListReports)
	mux.HandleFunc("POST /api/v1/reports/compare", s.handleCompareReports)
	mux.HandleFunc("GET /api/v1/reports/{id}", s.handleGetReport)
	mux.HandleFunc("PUT /api/v1/reports/{id}/visibility", s.handleSetVisibility)
	mux.HandleFunc("GET /api/v1/share/{shareId}", s.handleSharedReport)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "userId is required")
		return
	}
	result, err := s.assessments.Start(r.Context(), req.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleSaveAnswers(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "failed to read request body")
		return
	}
	vr, err := validation.ValidateAnswerPayload(body)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if !vr.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":   "VALIDATION_FAILED",
			"errors": vr.Errors,
		})
		return
	}

	var req struct {
		Answers []models.Answer `json:"answers"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "malformed answer payload")
		return
	}
	result, err := s.assessments.SaveAnswers(r.Context(), r.PathValue("testId"), req.Answers)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteAssessment(w http.ResponseWriter, r *http.Request) {
	result, err := s.assessments.Complete(r.Context(), r.PathValue("testId"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.assessments.Progress(r.Context(), r.PathValue("testId"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResultID string `json:"resultId"`
		TestID   string `json:"testId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	ref := req.ResultID
	if ref == "" {
		ref = req.TestID
	}
	if ref == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "resultId or testId is required")
		return
	}
	rep, err := s.reports.Generate(r.Context(), ref)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "userId query parameter is required")
		return
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)
	reports, total, err := s.reports.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"total":   total,
		"page":    page,
	})
}

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsPublic bool `json:"isPublic"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	rep, err := s.reports.SetVisibility(r.Context(), r.PathValue("id"), req.IsPublic)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSharedReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.GetShared(r.Context(), r.PathValue("shareId"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCompareReports(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportIDs []string `json:"reportIds"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	cmp, err := s.reports.Compare(r.Context(), req.ReportIDs)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "malformed JSON body")
		return false
	}
	return true
}

// writeServiceError maps engine error codes onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", map[string]interface{}{"code": string(code)})
	}
	writeError(w, status, string(code), err.Error())
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeResultNotFound, apperrors.ErrCodeReportNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeIncompleteAnswerSet,
		apperrors.ErrCodeInvalidAnswer,
		apperrors.ErrCodeNoReports,
		apperrors.ErrCodeDimensionMismatch:
		return http.StatusBadRequest
	case apperrors.ErrCodeResultNotCompleted, apperrors.ErrCodeDuplicateReport:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil || v < 0 {
		return fallback
	}
	return v
}
