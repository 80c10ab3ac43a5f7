package api

import (
	"cmp"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/analysis"
	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/db"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/models"
)

// readySampleCount is the number of samples after which a voice is considered trained
const readySampleCount = 5

// TrainingHandler handles brand voice training and analysis requests
type TrainingHandler struct {
	db        *db.DB
	generator *content.Generator
	now       func() time.Time
	log       *logrus.Entry
}

// NewTrainingHandler creates a new training handler
func NewTrainingHandler(database *db.DB, generator *content.Generator, logger *logrus.Logger) *TrainingHandler {
	return &TrainingHandler{
		db:        database,
		generator: generator,
		now:       time.Now,
		log:       logging.Component(logger, "api.training"),
	}
}

// TrainRequest represents the request body for adding a training sample
type TrainRequest struct {
	UserID   string  `json:"user_id"`
	Content  string  `json:"content"`
	PostType string  `json:"post_type"`
	ImageURL *string `json:"image_url"`
}

// TrainResponse is returned after a sample is stored
type TrainResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	DataID  int64                  `json:"data_id"`
	Data    *models.TrainingSample `json:"data"`
}

// Train handles POST /api/brand-voice/train
func (h *TrainingHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req TrainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.PostType) == "" {
		writeError(w, h.log, apperr.Validation("content and post_type are required"))
		return
	}
	if req.ImageURL != nil && *req.ImageURL == "" {
		req.ImageURL = nil
	}

	userID := cmp.Or(req.UserID, models.DefaultUserID)
	sample, err := h.db.CreateTrainingSample(userID, req.Content, req.ImageURL, req.PostType)
	if err != nil {
		writeError(w, h.log, apperr.Wrap(err, "failed to save training sample"))
		return
	}

	h.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"post_type": req.PostType,
		"sample_id": sample.ID,
	}).Info("Training sample stored")

	writeJSON(w, http.StatusCreated, TrainResponse{
		Success: true,
		Message: "Training data saved successfully",
		DataID:  sample.ID,
		Data:    sample,
	})
}

// SamplesResponse lists stored samples
type SamplesResponse struct {
	Success bool                    `json:"success"`
	Samples []models.TrainingSample `json:"samples"`
	Count   int                     `json:"count"`
}

// ListSamples handles GET /api/brand-voice/samples
func (h *TrainingHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, h.log, apperr.Validation("invalid limit %q", raw))
			return
		}
		limit = n
	}

	samples, err := h.db.ListTrainingSamples(userIDParam(r), query.Get("post_type"), limit)
	if err != nil {
		writeError(w, h.log, apperr.Wrap(err, "failed to list training samples"))
		return
	}
	writeJSON(w, http.StatusOK, SamplesResponse{Success: true, Samples: samples, Count: len(samples)})
}

// GetSample handles GET /api/brand-voice/samples/{id}
func (h *TrainingHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, h.log, apperr.Validation("invalid sample ID"))
		return
	}

	sample, err := h.db.GetTrainingSample(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, h.log, apperr.NotFound("training sample "+idStr))
			return
		}
		writeError(w, h.log, apperr.Wrap(err, "failed to get training sample"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "sample": sample})
}

// TrainingStatusResponse summarizes how much a user has trained
type TrainingStatusResponse struct {
	Success     bool           `json:"success"`
	UserID      string         `json:"user_id"`
	Counts      map[string]int `json:"counts"`
	Total       int            `json:"total"`
	Ready       bool           `json:"ready"`
	Recommended int            `json:"recommended"`
	Message     string         `json:"message"`
}

// TrainingStatus handles GET /api/brand-voice/training-status
func (h *TrainingHandler) TrainingStatus(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	counts, err := h.db.CountTrainingSamplesByType(userID)
	if err != nil {
		writeError(w, h.log, apperr.Wrap(err, "failed to count training samples"))
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	resp := TrainingStatusResponse{
		Success:     true,
		UserID:      userID,
		Counts:      counts,
		Total:       total,
		Ready:       total >= readySampleCount,
		Recommended: readySampleCount,
		Message:     "Your brand voice is trained and ready",
	}
	if !resp.Ready {
		resp.Message = "Add " + strconv.Itoa(readySampleCount-total) + " more posts to train your brand voice"
	}
	writeJSON(w, http.StatusOK, resp)
}

// VoiceProfileResponse carries a profile rebuilt from stored samples
type VoiceProfileResponse struct {
	Success         bool                  `json:"success"`
	Profile         analysis.VoiceProfile `json:"profile"`
	Analysis        analysis.Bundle       `json:"analysis"`
	Recommendations []string              `json:"recommendations"`
	SampleCount     int                   `json:"sample_count"`
	AnalysisDate    time.Time             `json:"analysis_date"`
}

// VoiceProfile handles GET /api/brand-voice/voice-profile
func (h *TrainingHandler) VoiceProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	samples, err := h.db.ListTrainingSamples(userID, "", 0)
	if err != nil {
		writeError(w, h.log, apperr.Wrap(err, "failed to load training samples"))
		return
	}
	if len(samples) == 0 {
		writeError(w, h.log, apperr.InsufficientData(
			"no training data for "+userID,
			"add past posts with /api/brand-voice/train first",
		))
		return
	}

	texts := make([]string, len(samples))
	for i, s := range samples {
		texts[i] = s.Content
	}
	report := analysis.BuildReport(texts, h.now().UTC())
	writeJSON(w, http.StatusOK, VoiceProfileResponse{
		Success:         true,
		Profile:         report.BrandProfile,
		Analysis:        report.Analysis,
		Recommendations: report.Recommendations,
		SampleCount:     len(samples),
		AnalysisDate:    report.AnalysisDate,
	})
}

// AnalyzeTextRequest represents the request body for free-text analysis
type AnalyzeTextRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// AnalyzeTextResponse wraps an analysis report
type AnalyzeTextResponse struct {
	Success bool `json:"success"`
	analysis.Report
}

// AnalyzeText handles POST /api/brand-voice/analyze-text
func (h *TrainingHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, h.log, apperr.Validation("content is required"))
		return
	}

	report := analysis.AnalyzeText(req.Content, cmp.Or(req.ContentType, "mixed"), h.now().UTC())
	writeJSON(w, http.StatusOK, AnalyzeTextResponse{Success: true, Report: report})
}

// SampleAnalysis handles GET /api/brand-voice/sample-analysis
func (h *TrainingHandler) SampleAnalysis(w http.ResponseWriter, r *http.Request) {
	report := analysis.AnalyzeText(analysis.SampleContent, "posts", h.now().UTC())
	writeJSON(w, http.StatusOK, AnalyzeTextResponse{Success: true, Report: report})
}

// GenerateVoiceRequest represents the request body for a voice-driven draft
type GenerateVoiceRequest struct {
	Prompt       string                 `json:"prompt"`
	ContentType  string                 `json:"content_type"`
	BrandProfile *analysis.VoiceProfile `json:"brand_profile"`
}

// GenerateVoiceResponse carries the draft and the profile used to write it
type GenerateVoiceResponse struct {
	Success          bool                  `json:"success"`
	Content          string                `json:"content"`
	Prompt           string                `json:"prompt"`
	ContentType      string                `json:"content_type"`
	BrandProfileUsed analysis.VoiceProfile `json:"brand_profile_used"`
}

// GenerateContent handles POST /api/brand-voice/generate-content
func (h *TrainingHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateVoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, h.log, apperr.Validation("prompt is required"))
		return
	}

	profile := analysis.DefaultVoiceProfile()
	if req.BrandProfile != nil {
		profile = *req.BrandProfile
	}
	contentType := cmp.Or(req.ContentType, content.VoicePostType)

	writeJSON(w, http.StatusOK, GenerateVoiceResponse{
		Success:          true,
		Content:          content.GenerateWithVoice(req.Prompt, profile, contentType),
		Prompt:           req.Prompt,
		ContentType:      contentType,
		BrandProfileUsed: profile,
	})
}

// RecommendationsResponse lists suggestions derived from training samples
type RecommendationsResponse struct {
	Success         bool                     `json:"success"`
	ContentType     string                   `json:"content_type"`
	Platform        string                   `json:"platform"`
	Recommendations []content.Recommendation `json:"recommendations"`
	SamplesUsed     int                      `json:"samples_used"`
}

// Recommendations handles GET /api/learning/content-recommendations
func (h *TrainingHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	contentType := cmp.Or(query.Get("type"), models.ContentTypePropertyShowcase)
	platform := cmp.Or(query.Get("platform"), models.PlatformInstagram)

	samples, err := h.db.ListTrainingSamples(userIDParam(r), contentType, 0)
	if err != nil {
		writeError(w, h.log, apperr.Wrap(err, "failed to load training samples"))
		return
	}

	recs := h.generator.FromTraining(samples, contentType, platform)
	if len(recs) == 1 && recs[0].InsufficientData {
		writeError(w, h.log, apperr.InsufficientData("no training data for "+contentType, recs[0].Content))
		return
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Success:         true,
		ContentType:     contentType,
		Platform:        platform,
		Recommendations: recs,
		SamplesUsed:     len(samples),
	})
}

func userIDParam(r *http.Request) string {
	return cmp.Or(r.URL.Query().Get("user_id"), models.DefaultUserID)
}
