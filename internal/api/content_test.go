package api

import (
	"net/http"
	"testing"
)

func TestGenerateContent_Success(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	body := `{"content_type": "property_showcase", "platform": "facebook", "location": "Kingsville", "custom_fields": {"bedrooms": "4"}}`
	w := doRequest(t, router, http.MethodPost, "/api/content/generate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	resp := decodeBody[GenerateResponse](t, w)
	if resp.Content == nil || resp.Content.Content == "" {
		t.Fatal("expected generated content")
	}
	if resp.Content.Location != "Kingsville" {
		t.Errorf("expected location 'Kingsville', got '%s'", resp.Content.Location)
	}
	if resp.Content.Platform != "facebook" {
		t.Errorf("expected platform 'facebook', got '%s'", resp.Content.Platform)
	}
	if n := len(resp.Content.Hashtags); n < 3 || n > 5 {
		t.Errorf("expected 3-5 hashtags for facebook, got %d", n)
	}
	if len(resp.Content.GenerationID) != 8 {
		t.Errorf("expected 8 character generation id, got '%s'", resp.Content.GenerationID)
	}
}

func TestGenerateContent_Validation(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	testCases := []struct {
		name string
		body string
	}{
		{"missing content type", `{"platform": "instagram"}`},
		{"unsupported content type", `{"content_type": "poetry"}`},
		{"invalid json", `not json`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/content/generate", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestContentAnalytics(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	for _, ct := range []string{"educational", "community", "educational"} {
		w := doRequest(t, router, http.MethodPost, "/api/content/generate", `{"content_type": "`+ct+`"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("generate %s: expected status %d, got %d", ct, http.StatusOK, w.Code)
		}
	}

	w := doRequest(t, router, http.MethodGet, "/api/content/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeBody[AnalyticsResponse](t, w)
	if resp.Analytics.TotalGenerated != 3 {
		t.Errorf("expected 3 generated, got %d", resp.Analytics.TotalGenerated)
	}
	if resp.Analytics.ContentTypes["educational"] != 2 {
		t.Errorf("expected 2 educational posts, got %d", resp.Analytics.ContentTypes["educational"])
	}
	if resp.MemorySizes.History != 3 {
		t.Errorf("expected 3 history entries, got %d", resp.MemorySizes.History)
	}
	if len(resp.SupportedTypes) != 4 {
		t.Errorf("expected 4 supported types, got %d", len(resp.SupportedTypes))
	}
}
