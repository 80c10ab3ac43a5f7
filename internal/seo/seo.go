// Package seo scores post text against a fixed local real-estate rubric.
package seo

import (
	"fmt"
	"strings"
)

// Result is an SEO score in [0,100] with improvement suggestions
type Result struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

var (
	primaryKeywords = []string{
		"windsor", "essex", "real estate", "home", "house", "property",
		"listing", "realtor", "agent",
	}
	locationKeywords = []string{
		"tecumseh", "lasalle", "amherstburg", "kingsville", "leamington",
		"belle river", "walkerville", "south windsor",
	}
	ctaPhrases = []string{"contact me", "dm me", "call now", "learn more", "schedule a viewing"}
)

// Score rates text. It is deterministic: equal input yields an equal Result.
func Score(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Score: 0, Recommendations: []string{"Content is empty"}}
	}

	lower := strings.ToLower(text)
	var recs []string
	score := 0

	primary := countPresent(lower, primaryKeywords)
	score += min(primary*5, 50)
	if primary < 3 {
		recs = append(recs, "Include more primary keywords like 'Windsor', 'real estate', 'home'.")
	}

	if countPresent(lower, locationKeywords) > 0 {
		score += 20
	} else {
		recs = append(recs, "Add a specific location (e.g., 'Tecumseh', 'South Windsor') to target local buyers.")
	}

	words := len(strings.Fields(text))
	switch {
	case words >= 50 && words <= 150:
		score += 20
	case words >= 25 && words < 50:
		score += 10
	default:
		recs = append(recs, fmt.Sprintf("Content length is %d words. Aim for 50-150 words for optimal engagement.", words))
	}

	if countPresent(lower, ctaPhrases) > 0 {
		score += 10
	} else {
		recs = append(recs, "Include a clear Call to Action (e.g., 'DM me for details').")
	}

	if len(recs) == 0 {
		recs = []string{"Looks good! This content is well-optimized."}
	}
	return Result{Score: min(score, 100), Recommendations: recs}
}

func countPresent(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}
