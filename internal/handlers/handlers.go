package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/vedanttarate/gesture-detection/internal/model"
)

// Predictor is the slice of the model server the HTTP layer needs.
type Predictor interface {
	Loaded() bool
	Info() model.Info
	Predict(rows []map[string]any) ([]model.RowResult, error)
}

type Handler struct {
	predictor Predictor
}

func NewHandler(p Predictor) *Handler {
	return &Handler{predictor: p}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       "ok",
		"model_loaded": h.predictor.Loaded(),
	})
}

// ModelInfo returns load diagnostics for debugging 503s from Predict.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.predictor.Info())
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.predictor.Loaded() {
		http.Error(w, "Model not loaded", http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		http.Error(w, "Request body must be a non-empty JSON array of objects", http.StatusBadRequest)
		return
	}

	results, err := h.predictor.Predict(rows)
	if err != nil {
		log.Printf("Prediction error: %v", err)
		http.Error(w, "Model prediction failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
