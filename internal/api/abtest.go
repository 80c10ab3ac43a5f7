package api

import (
	"cmp"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/abtest"
	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/models"
)

// ABTestHandler handles A/B testing requests
type ABTestHandler struct {
	service   *abtest.Service
	generator *content.Generator
	log       *logrus.Entry
}

// NewABTestHandler creates a new A/B test handler. The generator supplies
// base content when a request names only a content type.
func NewABTestHandler(service *abtest.Service, generator *content.Generator, logger *logrus.Logger) *ABTestHandler {
	return &ABTestHandler{
		service:   service,
		generator: generator,
		log:       logging.Component(logger, "api.abtest"),
	}
}

// CreateTestRequest represents the request body for creating a test
type CreateTestRequest struct {
	TestName       string             `json:"test_name"`
	BaseContent    abtest.BaseContent `json:"base_content"`
	ContentType    string             `json:"content_type"`
	VariationTypes []string           `json:"variation_types"`
	Platform       string             `json:"platform"`
}

// TestResponse wraps one test
type TestResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Test    *models.ABTest `json:"test"`
}

// CreateTest handles POST /api/ab-testing/create-test
func (h *ABTestHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req CreateTestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.TestName) == "" {
		writeError(w, h.log, apperr.Validation("test_name is required"))
		return
	}

	base := req.BaseContent
	if strings.TrimSpace(base.Content) == "" {
		generated, err := h.generateBase(req)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		base = generated
	}

	test, err := h.service.Create(abtest.CreateRequest{
		Name:           req.TestName,
		Base:           base,
		VariationTypes: req.VariationTypes,
		Platform:       req.Platform,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, TestResponse{
		Success: true,
		Message: "A/B test created successfully",
		Test:    test,
	})
}

func (h *ABTestHandler) generateBase(req CreateTestRequest) (abtest.BaseContent, error) {
	contentType := cmp.Or(req.ContentType, req.BaseContent.ContentType)
	if contentType == "" {
		return abtest.BaseContent{}, apperr.Validation("base_content.content or content_type is required")
	}
	if !content.Supported(contentType) {
		return abtest.BaseContent{}, apperr.Validation("content_type %s is not supported, use one of %s",
			contentType, strings.Join(content.ContentTypes(), ", "))
	}
	generated, err := h.generator.Generate(content.Request{
		ContentType: contentType,
		Platform:    req.Platform,
		Location:    req.BaseContent.Location,
	})
	if err != nil {
		return abtest.BaseContent{}, err
	}
	return abtest.BaseContent{
		Content:     generated.Content,
		Hashtags:    generated.Hashtags,
		ImagePrompt: generated.ImagePrompt,
		ContentType: generated.ContentType,
		Location:    generated.Location,
		Topic:       req.BaseContent.Topic,
	}, nil
}

// StartTest handles POST /api/ab-testing/start-test/{id}
func (h *ABTestHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	test, err := h.service.Start(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, TestResponse{
		Success: true,
		Message: "A/B test started",
		Test:    test,
	})
}

// UpdatePerformanceRequest represents reported engagement for one variation
type UpdatePerformanceRequest struct {
	TestID         string                 `json:"test_id"`
	VariationID    string                 `json:"variation_id"`
	PostID         string                 `json:"post_id"`
	EngagementData *models.EngagementData `json:"engagement_data"`
}

// UpdatePerformance handles POST /api/ab-testing/update-performance
func (h *ABTestHandler) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	var req UpdatePerformanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	test, err := h.service.UpdatePerformance(abtest.PerformanceUpdate{
		TestID:         req.TestID,
		VariationID:    req.VariationID,
		PostID:         req.PostID,
		EngagementData: req.EngagementData,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, TestResponse{
		Success: true,
		Message: "Performance data updated",
		Test:    test,
	})
}

// AnalyzeResponse carries either scored results or manual testing steps
type AnalyzeResponse struct {
	Success       bool                `json:"success"`
	ManualTesting bool                `json:"manual_testing"`
	Results       *abtest.Results     `json:"results,omitempty"`
	Instructions  *abtest.ManualGuide `json:"instructions,omitempty"`
}

// AnalyzeResults handles GET /api/ab-testing/analyze-results/{id}
func (h *ABTestHandler) AnalyzeResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	results, err := h.service.Analyze(id)
	if err == nil {
		writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Results: results})
		return
	}
	if !apperr.Is(err, apperr.KindInsufficientData) {
		writeError(w, h.log, err)
		return
	}

	test, err := h.service.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	guide := abtest.ManualTestingGuide(test)
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:       true,
		ManualTesting: true,
		Instructions:  &guide,
	})
}

// ListTests handles GET /api/ab-testing/tests
func (h *ABTestHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"active_tests":    overview.ActiveTests,
		"completed_tests": overview.CompletedTests,
		"total":           len(overview.ActiveTests) + len(overview.CompletedTests),
	})
}

// GetTest handles GET /api/ab-testing/test/{id}
func (h *ABTestHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	test, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"test":    test,
		"summary": abtest.Summarize(test),
	})
}

// DeleteTest handles DELETE /api/ab-testing/test/{id}
func (h *ABTestHandler) DeleteTest(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VariationStrategies handles GET /api/ab-testing/variation-strategies
func (h *ABTestHandler) VariationStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"strategies": abtest.Strategies(),
	})
}
