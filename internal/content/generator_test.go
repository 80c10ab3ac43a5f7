package content

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/models"
)

// newTestGenerator returns a seeded generator whose clock advances one minute per call
func newTestGenerator(opts ...Option) *Generator {
	current := time.Date(2025, time.July, 14, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
	base := []Option{WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(clock)}
	return NewGenerator(append(base, opts...)...)
}

func TestGenerate_UnsupportedType(t *testing.T) {
	g := newTestGenerator()
	_, err := g.Generate(Request{ContentType: "recipe"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGenerate_AllContentTypes(t *testing.T) {
	g := newTestGenerator()
	for _, ct := range ContentTypes() {
		t.Run(ct, func(t *testing.T) {
			out, err := g.Generate(Request{ContentType: ct, Platform: models.PlatformInstagram})
			require.NoError(t, err)

			assert.NotEmpty(t, out.Content)
			assert.NotContains(t, out.Content, "{")
			assert.Equal(t, ct, out.ContentType)
			assert.Contains(t, Locations, out.Location)
			assert.Len(t, out.GenerationID, 8)
			assert.True(t, strings.HasPrefix(out.TemplateID, ct+"_"))
			assert.Contains(t, out.ImagePrompt, out.Location)
			assert.Equal(t, len(strings.Fields(out.Content)), out.Metadata.WordCount)
			assert.Contains(t, []string{"low", "medium", "high"}, out.Metadata.EngagementPotential)
		})
	}
}

func TestGenerate_UsesRequestedLocationAndCustomFields(t *testing.T) {
	g := newTestGenerator()
	out, err := g.Generate(Request{
		ContentType: models.ContentTypeCommunity,
		Platform:    models.PlatformFacebook,
		Location:    "Kingsville",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kingsville", out.Location)
	assert.Equal(t, models.PlatformFacebook, out.Platform)
}

func TestGenerate_DefaultsPlatform(t *testing.T) {
	g := newTestGenerator()
	out, err := g.Generate(Request{ContentType: models.ContentTypeEducational})
	require.NoError(t, err)
	assert.Equal(t, models.PlatformInstagram, out.Platform)
}

func TestGenerate_HashtagCountPerPlatform(t *testing.T) {
	tests := []struct {
		platform string
		min, max int
	}{
		{models.PlatformInstagram, 8, 12},
		{models.PlatformFacebook, 3, 5},
		{models.PlatformLinkedIn, 3, 5},
	}

	g := newTestGenerator()
	for _, tt := range tests {
		for i := 0; i < 5; i++ {
			out, err := g.Generate(Request{ContentType: models.ContentTypePropertyShowcase, Platform: tt.platform})
			require.NoError(t, err)

			assert.GreaterOrEqual(t, len(out.Hashtags), tt.min, tt.platform)
			assert.LessOrEqual(t, len(out.Hashtags), tt.max, tt.platform)
			assert.Len(t, toSet(out.Hashtags), len(out.Hashtags), "hashtags must be distinct")
		}
	}
}

func TestGenerate_AvoidsRecentLocations(t *testing.T) {
	g := newTestGenerator()
	var seen []string
	for i := 0; i < recentLocationWindow+1; i++ {
		out, err := g.Generate(Request{ContentType: models.ContentTypeMarketUpdate})
		require.NoError(t, err)
		seen = append(seen, out.Location)
	}
	assert.Len(t, toSet(seen), len(seen))
}

func TestGenerate_MemoryStaysBounded(t *testing.T) {
	limits := Limits{Templates: 3, Hooks: 3, Hashtags: 2, History: 4}
	g := newTestGenerator(WithLimits(limits))

	var first time.Time
	for i := 0; i < 12; i++ {
		out, err := g.Generate(Request{ContentType: models.ContentTypePropertyShowcase})
		require.NoError(t, err)
		if i == 0 {
			first = out.Timestamp
		}

		sizes := g.MemorySizes()
		assert.LessOrEqual(t, sizes.Templates, limits.Templates)
		assert.LessOrEqual(t, sizes.Hooks, limits.Hooks)
		assert.LessOrEqual(t, sizes.Hashtags, limits.Hashtags)
		assert.LessOrEqual(t, sizes.History, limits.History)
	}

	for _, e := range g.memory.History(-1) {
		assert.True(t, e.Timestamp.After(first), "oldest entry should have been evicted")
	}
}

func TestGenerate_ConcurrentCallersShareMemory(t *testing.T) {
	limits := Limits{Templates: 3, Hooks: 3, Hashtags: 2, History: 5}
	g := newTestGenerator(WithLimits(limits))
	types := ContentTypes()

	const workers, perWorker = 8, 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(ct string) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				out, err := g.Generate(Request{ContentType: ct})
				if !assert.NoError(t, err) {
					return
				}
				assert.NotEmpty(t, out.Content)

				sizes := g.MemorySizes()
				assert.LessOrEqual(t, sizes.Templates, limits.Templates)
				assert.LessOrEqual(t, sizes.Hooks, limits.Hooks)
				assert.LessOrEqual(t, sizes.Hashtags, limits.Hashtags)
				assert.LessOrEqual(t, sizes.History, limits.History)
			}
		}(types[w%len(types)])
	}
	wg.Wait()

	assert.Equal(t, min(workers*perWorker, limits.History), g.Analytics().TotalGenerated)

	// each entry got its own clock tick, so none were lost or duplicated
	seen := map[time.Time]bool{}
	for _, e := range g.memory.History(-1) {
		assert.False(t, seen[e.Timestamp], "duplicate history entry at %s", e.Timestamp)
		seen[e.Timestamp] = true
	}
	assert.Len(t, seen, limits.History)
}

func TestGenerate_UniquenessFirstIsOne(t *testing.T) {
	g := newTestGenerator()
	out, err := g.Generate(Request{ContentType: models.ContentTypeEducational})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Metadata.UniquenessScore)

	out, err = g.Generate(Request{ContentType: models.ContentTypeEducational})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out.Metadata.UniquenessScore, 0.0)
	assert.LessOrEqual(t, out.Metadata.UniquenessScore, 1.0)
}

func TestEngagementPotential(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Is this the one? 🏡", "medium"},
		{"Do you love this home? 🏡", "high"},
		{"", "low"},
		{"Your next home", "medium"},
		{strings.Repeat("word ", 60), "low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EngagementPotential(tt.text), tt.text)
	}
}

func TestSeasonAndTimeOfDay(t *testing.T) {
	tests := []struct {
		month  time.Month
		hour   int
		season string
		tod    string
	}{
		{time.January, 4, "winter", "evening"},
		{time.April, 5, "spring", "morning"},
		{time.July, 12, "summer", "afternoon"},
		{time.October, 16, "fall", "afternoon"},
		{time.December, 17, "winter", "evening"},
	}
	for _, tt := range tests {
		ts := time.Date(2025, tt.month, 1, tt.hour, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.season, Season(ts))
		assert.Equal(t, tt.tod, TimeOfDay(ts))
	}
}

func TestLocationHashtags(t *testing.T) {
	assert.Equal(t,
		[]string{"#WindsorEssex", "#WindsorEssexRealEstate", "#WindsorEssexHomes"},
		LocationHashtags("Windsor-Essex"))
	assert.Nil(t, LocationHashtags(""))
}

func TestReplaceWord_KeepsPunctuationAndCase(t *testing.T) {
	// a tiny constant draw makes every replacement fire with the first synonym
	g := NewGenerator(WithRand(rand.New(lowSource{})))

	assert.Equal(t, "Stunning!", g.replaceWord("Beautiful!"))
	assert.Equal(t, "stunning,", g.replaceWord("beautiful,"))
	assert.Equal(t, "kitchen.", g.replaceWord("kitchen."))
	assert.Equal(t, "...", g.replaceWord("..."))
}

type lowSource struct{}

func (lowSource) Uint64() uint64 { return 1 << 10 }

func TestAnalytics(t *testing.T) {
	g := newTestGenerator()
	empty := g.Analytics()
	assert.Equal(t, 0, empty.TotalGenerated)
	assert.Equal(t, "0/50", empty.MemoryUtilization["history"])

	for i := 0; i < 3; i++ {
		_, err := g.Generate(Request{ContentType: models.ContentTypeCommunity})
		require.NoError(t, err)
	}

	a := g.Analytics()
	assert.Equal(t, 3, a.TotalGenerated)
	assert.Equal(t, 3, a.ContentTypes[models.ContentTypeCommunity])
	assert.GreaterOrEqual(t, a.TemplateDiversity, 1)
	assert.NotEmpty(t, a.MostUsedTemplate)
	assert.Greater(t, a.AverageUniqueness, 0.0)
	assert.Equal(t, "3/50", a.MemoryUtilization["history"])
}
