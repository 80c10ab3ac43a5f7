package abtest

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/models"
)

const (
	// CompletionConfidence is the confidence above which a test is completed
	CompletionConfidence = 80.0
	maxConfidence        = 99.0
)

// VariationScore is the weighted engagement of one variation
type VariationScore struct {
	VariationID     string                `json:"variation_id"`
	EngagementScore float64               `json:"engagement_score"`
	RawData         models.EngagementData `json:"raw_data"`
}

// Results is the outcome of analyzing a test
type Results struct {
	TestID          string            `json:"test_id"`
	Status          models.TestStatus `json:"status"`
	Winner          VariationScore    `json:"winner"`
	AllResults      []VariationScore  `json:"all_results"`
	ConfidenceLevel float64           `json:"confidence_level"`
	Recommendations []string          `json:"recommendations"`
}

// EngagementScore weighs comments and saves double and shares triple, per 100 reached
func EngagementScore(d models.EngagementData) float64 {
	reach := max(d.Reach, 1)
	weighted := d.Likes + 2*d.Comments + 3*d.Shares + 2*d.Saves
	return float64(weighted) / float64(reach) * 100
}

// Confidence is the winner's relative lead over the runner-up as a percentage, capped at 99
func Confidence(winner, runnerUp float64) float64 {
	if runnerUp <= 0 {
		return maxConfidence
	}
	return math.Min((winner-runnerUp)/runnerUp*100, maxConfidence)
}

// Score ranks the variations that have engagement data. It needs at least two.
func Score(test *models.ABTest) ([]VariationScore, error) {
	var scores []VariationScore
	for _, v := range test.Variations {
		if v.EngagementData == nil {
			continue
		}
		scores = append(scores, VariationScore{
			VariationID:     v.ID,
			EngagementScore: EngagementScore(*v.EngagementData),
			RawData:         *v.EngagementData,
		})
	}
	if len(scores) < 2 {
		return nil, apperr.InsufficientData(
			"Insufficient data for analysis",
			"Record engagement for at least two variations before analyzing.",
		)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].EngagementScore > scores[j].EngagementScore
	})
	return scores, nil
}

// Recommendations explains what drove the winner and how decisive it was.
// scores must be sorted best first.
func Recommendations(scores []VariationScore) []string {
	recs := []string{}
	if len(scores) == 0 {
		return recs
	}

	w := scores[0].RawData
	if float64(w.Comments) > float64(w.Likes)*0.1 {
		recs = append(recs, "High comment rate suggests engaging, conversation-starting content works well")
	}
	if w.Shares > 0 {
		recs = append(recs, "Content was shareable - consider similar value-driven posts")
	}
	if w.Saves > 0 {
		recs = append(recs, "Content was saved - informational/educational content performs well")
	}

	if len(scores) > 1 {
		rest := make([]float64, 0, len(scores)-1)
		for _, s := range scores[1:] {
			rest = append(rest, s.EngagementScore)
		}
		avg, _ := stats.Mean(rest)
		top := scores[0].EngagementScore

		switch {
		case top > avg*1.5:
			recs = append(recs, "Clear winner - replicate this content style for future posts")
		case top > avg*1.2:
			recs = append(recs, "Moderate improvement - test similar variations to optimize further")
		default:
			recs = append(recs, "Close results - consider testing with larger audience or longer duration")
		}
	}
	return recs
}
