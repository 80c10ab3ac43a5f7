package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n"} {
		r := Score(text)
		assert.Equal(t, 0, r.Score)
		assert.Equal(t, []string{"Content is empty"}, r.Recommendations)
	}
}

func TestScore_Rubric(t *testing.T) {
	body := "Windsor real estate update: this home and house listing from your local realtor agent in Tecumseh. " +
		strings.Repeat("word ", 40) + "Contact me today."

	r := Score(body)

	// windsor, real estate, home, house, listing, realtor, agent = 7 keywords
	assert.Equal(t, 35+20+20+10, r.Score)
	assert.Equal(t, []string{"Looks good! This content is well-optimized."}, r.Recommendations)
}

func TestScore_ShortWithoutLocationOrCTA(t *testing.T) {
	r := Score("Nice day")

	assert.Equal(t, 0, r.Score)
	assert.Len(t, r.Recommendations, 4)
	assert.Contains(t, r.Recommendations, "Content length is 2 words. Aim for 50-150 words for optimal engagement.")
}

func TestScore_HalfCreditLength(t *testing.T) {
	r := Score(strings.Repeat("word ", 30))
	assert.Equal(t, 10, r.Score)
	for _, rec := range r.Recommendations {
		assert.NotContains(t, rec, "Content length")
	}
}

func TestScore_Idempotent(t *testing.T) {
	text := "Just listed in South Windsor! DM me for a private showing."
	assert.Equal(t, Score(text), Score(text))
}
