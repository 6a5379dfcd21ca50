package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/importer"
	"github.com/matchlog-io/matchlog-engine/pkg/services"
)

// ImportResponse is the JSON envelope returned by POST /api/import.
// Inserted is present only when the store was actually replaced.
type ImportResponse struct {
	OK         bool                     `json:"ok"`
	Received   int                      `json:"received"`
	Normalized int                      `json:"normalized"`
	Deduped    int                      `json:"deduped"`
	Wiped      bool                     `json:"wiped"`
	Inserted   *services.InsertedCounts `json:"inserted,omitempty"`
	Message    string                   `json:"message,omitempty"`
	Warnings   []string                 `json:"warnings"`
}

// ImportHandler handles bulk import requests.
type ImportHandler struct {
	importService services.ImportService
	logger        *zap.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(importService services.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{importService: importService, logger: logger}
}

// Import handles POST /api/import. Malformed envelopes are client faults and
// touch nothing; storage faults abort atomically and report a server fault.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importer.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Games == nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "request must contain a games array")
		return
	}

	summary, err := h.importService.Run(r.Context(), req.Games)
	if err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ImportResponse{
		OK:         true,
		Received:   summary.Received,
		Normalized: summary.Normalized,
		Deduped:    summary.Deduped,
		Wiped:      summary.Wiped,
		Message:    summary.Message,
		Warnings:   summary.Warnings,
	}
	if summary.Wiped {
		resp.Inserted = &summary.Inserted
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode import response", zap.Error(err))
	}
}
