package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

var trainingPosts = []string{
	"Just listed in Windsor! Beautiful family home with a huge backyard. Ready to see it? Call me today!",
	"Thinking of selling this spring? Our market update shows prices holding steady. Let's chat about your goals!",
	"Happy Saturday, neighbours! Grab a coffee downtown and support local businesses. What's your favourite spot?",
	"First-time buyer tip: get pre-approved before you start touring. It makes your offer stronger!",
	"Open house this Sunday in Tecumseh. Stop by, say hi and explore this stunning bungalow!",
}

func trainPost(t *testing.T, router http.Handler, content, postType string) {
	t.Helper()
	body := fmt.Sprintf(`{"content": %q, "post_type": %q}`, content, postType)
	w := doRequest(t, router, http.MethodPost, "/api/brand-voice/train", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("train: expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestTrain_Success(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	body := `{"content": "Just listed in Windsor!", "post_type": "property_showcase", "image_url": "https://img.test/1.jpg"}`
	w := doRequest(t, router, http.MethodPost, "/api/brand-voice/train", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	resp := decodeBody[TrainResponse](t, w)
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.DataID == 0 || resp.Data == nil || resp.Data.ID != resp.DataID {
		t.Errorf("expected data_id to match the stored sample, got %+v", resp)
	}
	if resp.Data.UserID != "default_user" {
		t.Errorf("expected user 'default_user', got '%s'", resp.Data.UserID)
	}
	if resp.Data.ImageURL == nil || *resp.Data.ImageURL != "https://img.test/1.jpg" {
		t.Errorf("expected image url to be stored, got %v", resp.Data.ImageURL)
	}
}

func TestTrain_MissingFields(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	testCases := []struct {
		name string
		body string
	}{
		{"missing content", `{"post_type": "general"}`},
		{"missing post type", `{"content": "hello"}`},
		{"blank content", `{"content": "   ", "post_type": "general"}`},
		{"invalid json", `{invalid`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/brand-voice/train", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
			resp := decodeBody[ErrorResponse](t, w)
			if resp.Success || resp.Error == "" {
				t.Errorf("expected error envelope, got %+v", resp)
			}
		})
	}
}

func TestSamples_ListAndGet(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	trainPost(t, router, "first post", "general")
	trainPost(t, router, "second post", "market_update")
	trainPost(t, router, "third post", "general")

	w := doRequest(t, router, http.MethodGet, "/api/brand-voice/samples?post_type=general", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	list := decodeBody[SamplesResponse](t, w)
	if list.Count != 2 {
		t.Fatalf("expected 2 general samples, got %d", list.Count)
	}
	if list.Samples[0].Content != "third post" {
		t.Errorf("expected newest first, got '%s'", list.Samples[0].Content)
	}

	w = doRequest(t, router, http.MethodGet, "/api/brand-voice/samples?limit=1", "")
	if got := decodeBody[SamplesResponse](t, w).Count; got != 1 {
		t.Errorf("expected limit to apply, got %d samples", got)
	}

	path := fmt.Sprintf("/api/brand-voice/samples/%d", list.Samples[0].ID)
	w = doRequest(t, router, http.MethodGet, path, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestSamples_Errors(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	testCases := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown id", "/api/brand-voice/samples/999", http.StatusNotFound},
		{"bad id", "/api/brand-voice/samples/abc", http.StatusBadRequest},
		{"bad limit", "/api/brand-voice/samples?limit=many", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tc.path, "")
			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestTrainingStatus_ReadyAfterFiveSamples(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	for i, post := range trainingPosts[:4] {
		trainPost(t, router, post, []string{"general", "market_update"}[i%2])
	}

	status := decodeBody[TrainingStatusResponse](t, doRequest(t, router, http.MethodGet, "/api/brand-voice/training-status", ""))
	if status.Ready {
		t.Error("expected not ready with 4 samples")
	}
	if status.Total != 4 || status.Counts["general"] != 2 || status.Counts["market_update"] != 2 {
		t.Errorf("unexpected counts: %+v", status)
	}

	trainPost(t, router, trainingPosts[4], "general")
	status = decodeBody[TrainingStatusResponse](t, doRequest(t, router, http.MethodGet, "/api/brand-voice/training-status", ""))
	if !status.Ready || status.Total != 5 {
		t.Errorf("expected ready with 5 samples, got %+v", status)
	}
}

func TestVoiceProfile(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodGet, "/api/brand-voice/voice-profile", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d without samples, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if resp := decodeBody[ErrorResponse](t, w); resp.Hint == "" {
		t.Error("expected a remediation hint")
	}

	for _, post := range trainingPosts {
		trainPost(t, router, post, "general")
	}
	w = doRequest(t, router, http.MethodGet, "/api/brand-voice/voice-profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeBody[VoiceProfileResponse](t, w)
	if resp.SampleCount != len(trainingPosts) {
		t.Errorf("expected %d samples, got %d", len(trainingPosts), resp.SampleCount)
	}
	if resp.Profile.DominantTone == "" {
		t.Error("expected a dominant tone")
	}
	if len(resp.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestAnalyzeText(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	body := fmt.Sprintf(`{"content": %q, "content_type": "posts"}`, strings.Join(trainingPosts, "\n\n"))
	w := doRequest(t, router, http.MethodPost, "/api/brand-voice/analyze-text", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := decodeBody[AnalyzeTextResponse](t, w)
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Analysis.SampleCount != len(trainingPosts) {
		t.Errorf("expected %d samples, got %d", len(trainingPosts), resp.Analysis.SampleCount)
	}

	w = doRequest(t, router, http.MethodPost, "/api/brand-voice/analyze-text", `{"content": ""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for empty content, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSampleAnalysis(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodGet, "/api/brand-voice/sample-analysis", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if resp := decodeBody[AnalyzeTextResponse](t, w); resp.Analysis.SampleCount < 2 {
		t.Errorf("expected the sample batch to split into posts, got %d", resp.Analysis.SampleCount)
	}
}

func TestGenerateVoiceContent(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodPost, "/api/brand-voice/generate-content", `{"prompt": "spring listings"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeBody[GenerateVoiceResponse](t, w)
	if !strings.Contains(resp.Content, "spring listings") {
		t.Errorf("expected prompt in draft, got '%s'", resp.Content)
	}
	if resp.ContentType != "social_post" {
		t.Errorf("expected default content type 'social_post', got '%s'", resp.ContentType)
	}
	if resp.BrandProfileUsed.DominantTone != "professional" {
		t.Errorf("expected default profile, got tone '%s'", resp.BrandProfileUsed.DominantTone)
	}

	w = doRequest(t, router, http.MethodPost, "/api/brand-voice/generate-content", `{"content_type": "social_post"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d without prompt, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestContentRecommendations(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, http.MethodGet, "/api/learning/content-recommendations?type=market_update", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	errResp := decodeBody[ErrorResponse](t, w)
	if errResp.Success || errResp.Error != "no training data for market_update" {
		t.Errorf("expected the content type named in the error, got %+v", errResp)
	}

	trainPost(t, router, trainingPosts[1], "market_update")
	w = doRequest(t, router, http.MethodGet, "/api/learning/content-recommendations?type=market_update&platform=linkedin", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeBody[RecommendationsResponse](t, w)
	if len(resp.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(resp.Recommendations))
	}
	for _, rec := range resp.Recommendations {
		if !strings.Contains(rec.Content, trainingPosts[1]) {
			t.Errorf("expected the training post to be quoted, got '%s'", rec.Content)
		}
		if n := len(rec.Hashtags); n < 3 || n > 5 {
			t.Errorf("expected 3-5 hashtags for linkedin, got %d", n)
		}
	}
}
