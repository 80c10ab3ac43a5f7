package models

import "time"

// Content types understood by the generator and the variation engine
const (
	ContentTypePropertyShowcase = "property_showcase"
	ContentTypeMarketUpdate     = "market_update"
	ContentTypeEducational      = "educational"
	ContentTypeCommunity        = "community"
)

// Platforms
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
)

// DefaultUserID is used when a request carries no user id
const DefaultUserID = "default_user"

// TrainingSample is a post supplied by a user to teach the system their voice
type TrainingSample struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	PostType  string    `json:"post_type" db:"post_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContentMetadata describes a generated post
type ContentMetadata struct {
	WordCount           int     `json:"word_count"`
	CharCount           int     `json:"char_count"`
	LocationMentions    int     `json:"location_mentions"`
	ContentType         string  `json:"content_type"`
	UniquenessScore     float64 `json:"uniqueness_score"`
	EngagementPotential string  `json:"engagement_potential"`
}

// GeneratedContent is a post produced by the content generator
type GeneratedContent struct {
	Content      string          `json:"content"`
	Hashtags     []string        `json:"hashtags"`
	ImagePrompt  string          `json:"image_prompt,omitempty"`
	Platform     string          `json:"platform"`
	Location     string          `json:"location"`
	ContentType  string          `json:"content_type"`
	TemplateID   string          `json:"template_id"`
	GenerationID string          `json:"generation_id"`
	Metadata     ContentMetadata `json:"metadata"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TestStatus is the lifecycle state of an A/B test
type TestStatus string

const (
	TestStatusDraft     TestStatus = "draft"
	TestStatusRunning   TestStatus = "running"
	TestStatusPaused    TestStatus = "paused"
	TestStatusCompleted TestStatus = "completed"
)

// EngagementData holds the raw metrics a user reports for a published variation
type EngagementData struct {
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Shares      int `json:"shares"`
	Saves       int `json:"saves"`
	Reach       int `json:"reach"`
	Impressions int `json:"impressions"`
}

// ABTestVariation is one candidate post in an A/B test
type ABTestVariation struct {
	ID             string          `json:"id"`
	Content        string          `json:"content"`
	Hashtags       []string        `json:"hashtags"`
	ImagePrompt    string          `json:"image_prompt,omitempty"`
	PostID         string          `json:"post_id,omitempty"`
	EngagementData *EngagementData `json:"engagement_data,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ABTest groups 2-4 variations that are compared on engagement
type ABTest struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	ContentType       string            `json:"content_type"`
	Platform          string            `json:"platform"`
	Status            TestStatus        `json:"status"`
	Variations        []ABTestVariation `json:"variations"`
	StartDate         *time.Time        `json:"start_date,omitempty"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	WinnerVariationID *string           `json:"winner_variation_id,omitempty"`
	ConfidenceLevel   *float64          `json:"confidence_level,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Variation returns the variation with the given id
func (t *ABTest) Variation(id string) (*ABTestVariation, bool) {
	for i := range t.Variations {
		if t.Variations[i].ID == id {
			return &t.Variations[i], true
		}
	}
	return nil, false
}
