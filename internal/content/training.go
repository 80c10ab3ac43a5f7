package content

import (
	"fmt"

	"brand-voice-studio/internal/models"
	"brand-voice-studio/internal/seo"
)

const defaultRegion = "Windsor-Essex"

// Recommendation is one training-driven content suggestion
type Recommendation struct {
	TemplateID         string   `json:"template_id"`
	Content            string   `json:"content"`
	Focus              string   `json:"focus"`
	Reason             string   `json:"reason"`
	Hashtags           []string `json:"hashtags"`
	SEOScore           int      `json:"seo_score"`
	SEORecommendations []string `json:"seo_recommendations"`
	BaseSampleID       int64    `json:"base_sample_id,omitempty"`
	InsufficientData   bool     `json:"insufficient_data,omitempty"`
}

type framing struct {
	id     string
	focus  string
	format string
	reason func(s models.TrainingSample) string
}

var framings = []framing{
	{
		id:     "variation_A",
		focus:  "call to action",
		format: "Here's a new take on a successful post: \"%s\" - What if we focused more on the call to action?",
		reason: func(s models.TrainingSample) string {
			return fmt.Sprintf("Based on your successful '%s' post.", s.PostType)
		},
	},
	{
		id:     "variation_B",
		focus:  "emotional hook",
		format: "Inspired by your style: \"%s\" - Let's try making the opening hook more emotional.",
		reason: func(s models.TrainingSample) string {
			return fmt.Sprintf("Learned from post ID %d.", s.ID)
		},
	},
	{
		id:     "variation_C",
		focus:  "market stats",
		format: "Let's try this angle: \"%s\" - We could also add some relevant market stats to this.",
		reason: func(models.TrainingSample) string {
			return "Adapting your proven content style."
		},
	},
}

// NoTrainingDataMessage is returned in place of suggestions when the pool is empty
const NoTrainingDataMessage = "I need more examples to learn your style! Please use the 'Train Brand Voice' feature to add at least 5-10 of your past posts."

// FromTraining derives up to three suggestions from prior posts. Each one
// quotes a randomly chosen sample under a different rewrite framing. An empty
// pool yields a single explanatory result.
func (g *Generator) FromTraining(samples []models.TrainingSample, contentType, platform string) []Recommendation {
	if len(samples) == 0 {
		return []Recommendation{{
			TemplateID:       "no_data_01",
			Content:          NoTrainingDataMessage,
			Reason:           "No training data found in the AI Memory.",
			Hashtags:         []string{},
			InsufficientData: true,
		}}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	recs := make([]Recommendation, 0, len(framings))
	for _, f := range framings {
		base := samples[g.rng.IntN(len(samples))]
		text := fmt.Sprintf(f.format, base.Content)
		score := seo.Score(text)
		recs = append(recs, Recommendation{
			TemplateID:         f.id,
			Content:            text,
			Focus:              f.focus,
			Reason:             f.reason(base),
			Hashtags:           g.hashtags(contentType, defaultRegion, platform),
			SEOScore:           score.Score,
			SEORecommendations: score.Recommendations,
			BaseSampleID:       base.ID,
		})
	}
	return recs
}
