package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-voice-studio/internal/models"
)

func TestFromTraining_EmptyPool(t *testing.T) {
	g := newTestGenerator()
	recs := g.FromTraining(nil, models.ContentTypeEducational, models.PlatformInstagram)

	require.Len(t, recs, 1)
	assert.Equal(t, "no_data_01", recs[0].TemplateID)
	assert.True(t, recs[0].InsufficientData)
	assert.Equal(t, NoTrainingDataMessage, recs[0].Content)
}

func TestFromTraining_ThreeFramings(t *testing.T) {
	g := newTestGenerator()
	samples := []models.TrainingSample{
		{ID: 1, Content: "Just listed in Walkerville! DM me for details.", PostType: models.ContentTypePropertyShowcase},
		{ID: 2, Content: "Open house this weekend in Tecumseh.", PostType: models.ContentTypePropertyShowcase},
	}

	recs := g.FromTraining(samples, models.ContentTypePropertyShowcase, models.PlatformFacebook)
	require.Len(t, recs, 3)

	wantIDs := []string{"variation_A", "variation_B", "variation_C"}
	wantFocus := []string{"call to action", "emotional hook", "market stats"}
	for i, rec := range recs {
		assert.Equal(t, wantIDs[i], rec.TemplateID)
		assert.Equal(t, wantFocus[i], rec.Focus)
		assert.False(t, rec.InsufficientData)
		assert.Contains(t, []int64{1, 2}, rec.BaseSampleID)

		var base string
		for _, s := range samples {
			if s.ID == rec.BaseSampleID {
				base = s.Content
			}
		}
		assert.True(t, strings.Contains(rec.Content, `"`+base+`"`), rec.Content)
		assert.GreaterOrEqual(t, len(rec.Hashtags), 3)
		assert.LessOrEqual(t, len(rec.Hashtags), 5)
		assert.GreaterOrEqual(t, rec.SEOScore, 0)
		assert.LessOrEqual(t, rec.SEOScore, 100)
		assert.NotEmpty(t, rec.SEORecommendations)
	}
	assert.Equal(t, "Adapting your proven content style.", recs[2].Reason)
}
