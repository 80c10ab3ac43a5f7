package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/models"
)

// ContentRecorder counts generated posts
type ContentRecorder interface {
	RecordContent(contentType string)
}

// ContentHandler handles template-based generation requests
type ContentHandler struct {
	generator *content.Generator
	recorder  ContentRecorder
	log       *logrus.Entry
}

// NewContentHandler creates a new content handler. recorder may be nil.
func NewContentHandler(generator *content.Generator, recorder ContentRecorder, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		generator: generator,
		recorder:  recorder,
		log:       logging.Component(logger, "api.content"),
	}
}

// GenerateResponse wraps one generated post
type GenerateResponse struct {
	Success bool                     `json:"success"`
	Content *models.GeneratedContent `json:"content"`
}

// Generate handles POST /api/content/generate
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req content.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.ContentType == "" {
		writeError(w, h.log, apperr.Validation("content_type is required"))
		return
	}

	generated, err := h.generator.Generate(req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if h.recorder != nil {
		h.recorder.RecordContent(generated.ContentType)
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Content: generated})
}

// AnalyticsResponse reports generation statistics
type AnalyticsResponse struct {
	Success        bool              `json:"success"`
	Analytics      content.Analytics `json:"analytics"`
	SupportedTypes []string          `json:"supported_content_types"`
	MemorySizes    content.Limits    `json:"memory_sizes"`
}

// Analytics handles GET /api/content/analytics
func (h *ContentHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AnalyticsResponse{
		Success:        true,
		Analytics:      h.generator.Analytics(),
		SupportedTypes: content.ContentTypes(),
		MemorySizes:    h.generator.MemorySizes(),
	})
}
