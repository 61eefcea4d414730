package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app "floorplan-analyzer/internal/application"
	"floorplan-analyzer/internal/domain/entity"
)

// DefaultMaxBodyBytes — ограничение размера тела запроса по умолчанию (32 МиБ).
const DefaultMaxBodyBytes = 32 << 20

type Handler struct {
	analysis     *app.AnalysisService
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewHandler(analysis *app.AnalysisService, maxBodyBytes int64, logger *slog.Logger) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		analysis:     analysis,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Routes собирает маршруты вместе с middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", h.AnalyzeHandler)
	mux.HandleFunc("/api/floorplan/analyze", h.AnalyzeHandler)
	mux.HandleFunc("/health", h.HealthHandler)

	return requestIDMiddleware(h.logMiddleware(h.recoverMiddleware(corsMiddleware(mux))))
}

// AnalyzeHandler обрабатывает POST /analyze
func (h *Handler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req app.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, fmt.Sprintf("invalid request body: body exceeds %d bytes", tooLarge.Limit), http.StatusBadRequest)
			return
		}
		respondError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.analysis.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if entity.IsClientError(err) {
			status = http.StatusBadRequest
		}
		respondError(w, err.Error(), status)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// HealthHandler проверка здоровья сервиса
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "ok",
		"engine": h.analysis.Engine(),
	}, http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
