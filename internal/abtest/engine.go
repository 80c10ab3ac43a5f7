// Package abtest builds A/B test variations from a base post, scores them on
// reported engagement and manages the test lifecycle.
package abtest

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"brand-voice-studio/internal/analysis"
	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/models"
)

// Variation types accepted by Create
const (
	TypeHooks             = "hooks"
	TypeCTAStyles         = "cta_styles"
	TypeEmojiStyles       = "emoji_styles"
	TypeHashtagStrategies = "hashtag_strategies"
)

const (
	maxVariations   = 4
	maxHookVariants = 3
	defaultLocation = "Windsor"
	defaultTopic    = "real estate"
)

// DefaultVariationTypes is used when a request names none
var DefaultVariationTypes = []string{TypeHooks, TypeCTAStyles}

var variationOrder = []string{TypeHooks, TypeCTAStyles, TypeEmojiStyles, TypeHashtagStrategies}

var hookLibrary = map[string][]string{
	models.ContentTypePropertyShowcase: {
		"🏡 Just listed in {location}!",
		"✨ New on the market:",
		"🔥 Hot property alert!",
		"💎 Hidden gem discovered:",
		"🌟 Featured listing:",
		"📍 Prime location available:",
		"🏠 Dream home opportunity:",
		"⭐ Exclusive listing:",
	},
	models.ContentTypeMarketUpdate: {
		"📊 {location} Market Update:",
		"📈 What's happening in {location}:",
		"🏘️ {location} Real Estate Trends:",
		"💹 Market Insight for {location}:",
		"📋 Your {location} Market Report:",
		"🔍 {location} Market Analysis:",
		"📊 Latest {location} Data:",
		"💼 {location} Investment Update:",
	},
	models.ContentTypeEducational: {
		"💡 Home Buying Tip:",
		"🎓 Real Estate Education:",
		"📚 Did you know?",
		"🤔 Wondering about {topic}?",
		"💭 Common question:",
		"🧠 Pro tip:",
		"📖 Real Estate 101:",
		"💪 Expert advice:",
	},
}

type ctaStyle struct {
	name    string
	options []string
}

var ctaStyles = []ctaStyle{
	{"direct", []string{
		"DM me for more details! 📩",
		"Call me today! 📞",
		"Send me a message! 💬",
		"Contact me now! 📱",
	}},
	{"soft", []string{
		"Questions? I'm here to help! 🤝",
		"Want to know more? Let's chat! ☕",
		"Curious? Reach out anytime! 😊",
		"Happy to discuss your options! 💭",
	}},
	{"urgent", []string{
		"Don't miss out - contact me today! ⏰",
		"Limited time - call now! 🚨",
		"Act fast - message me! ⚡",
		"Hurry - this won't last! 🏃‍♂️",
	}},
}

// emoji density buckets; only "none" rewrites the content
var emojiLevels = []string{"high", "medium", "low", "none"}

type hashtagStrategy struct {
	name     string
	min, max int
}

var hashtagStrategies = []hashtagStrategy{
	{"focused", 5, 8},
	{"broad", 10, 15},
	{"niche", 3, 6},
	{"trending", 8, 12},
}

var (
	broadTags    = []string{"#RealEstate", "#Property", "#Investment"}
	nicheTags    = []string{"#WindsorRealtor", "#EssexCountyHomes", "#LocalRealEstate"}
	trendingTags = []string{"#RealEstate", "#HomeBuying", "#PropertyInvestment"}
)

const (
	defaultHookLine = "🌟 Exciting opportunity in Windsor-Essex!"
	defaultCTALine  = "Ready to learn more? Let's connect! 💬"
	defaultTagLimit = 8
)

// BaseContent is the post variations are derived from
type BaseContent struct {
	Content     string   `json:"content"`
	Hashtags    []string `json:"hashtags"`
	ImagePrompt string   `json:"image_prompt"`
	ContentType string   `json:"content_type"`
	Location    string   `json:"location"`
	Topic       string   `json:"topic"`
}

// Engine generates variations. It is not safe for concurrent use unless the
// random source is.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// NewEngine creates an engine with the given random source and clock
func NewEngine(rng *rand.Rand, now func() time.Time) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0xab))
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// Variations builds 2 to 4 variations of base for the requested types.
// When the types yield fewer than two, the original and a default
// hook/CTA edit are returned instead.
func (e *Engine) Variations(base BaseContent, types []string) ([]models.ABTestVariation, error) {
	if strings.TrimSpace(base.Content) == "" {
		return nil, apperr.Validation("base content is required")
	}
	for _, t := range types {
		if !slices.Contains(variationOrder, t) {
			return nil, apperr.Validation("unknown variation type %q", t)
		}
	}

	var out []models.ABTestVariation
	for _, t := range variationOrder {
		if !slices.Contains(types, t) {
			continue
		}
		switch t {
		case TypeHooks:
			out = append(out, e.hookVariations(base)...)
		case TypeCTAStyles:
			out = append(out, e.ctaVariations(base)...)
		case TypeEmojiStyles:
			out = append(out, e.emojiVariations(base)...)
		case TypeHashtagStrategies:
			out = append(out, e.hashtagVariations(base)...)
		}
	}

	if len(out) < 2 {
		out = e.defaultVariations(base)
	}
	if len(out) > maxVariations {
		out = out[:maxVariations]
	}
	return out, nil
}

func (e *Engine) variation(id, content string, hashtags []string, base BaseContent) models.ABTestVariation {
	return models.ABTestVariation{
		ID:          id,
		Content:     content,
		Hashtags:    slices.Clone(nonNil(hashtags)),
		ImagePrompt: base.ImagePrompt,
		CreatedAt:   e.now().UTC(),
	}
}

func (e *Engine) hookVariations(base BaseContent) []models.ABTestVariation {
	hooks, ok := hookLibrary[base.ContentType]
	if !ok {
		hooks = hookLibrary[models.ContentTypeEducational]
	}
	location := cmp.Or(base.Location, defaultLocation)
	topic := cmp.Or(base.Topic, defaultTopic)
	fill := strings.NewReplacer("{location}", location, "{topic}", topic)

	n := min(maxHookVariants, len(hooks))
	perm := e.rng.Perm(len(hooks))[:n]

	out := make([]models.ABTestVariation, 0, n)
	for i, idx := range perm {
		lines := strings.Split(base.Content, "\n")
		lines[0] = fill.Replace(hooks[idx])
		out = append(out, e.variation(fmt.Sprintf("hook_var_%d", i+1), strings.Join(lines, "\n"), base.Hashtags, base))
	}
	return out
}

func (e *Engine) ctaVariations(base BaseContent) []models.ABTestVariation {
	out := make([]models.ABTestVariation, 0, len(ctaStyles))
	for _, style := range ctaStyles {
		lines := strings.Split(base.Content, "\n")
		last := len(lines) - 1

		// never pick the line already there, so the variation always differs
		var options []string
		for _, o := range style.options {
			if o != strings.TrimSpace(lines[last]) {
				options = append(options, o)
			}
		}
		lines[last] = options[e.rng.IntN(len(options))]
		out = append(out, e.variation("cta_"+style.name, strings.Join(lines, "\n"), base.Hashtags, base))
	}
	return out
}

func (e *Engine) emojiVariations(base BaseContent) []models.ABTestVariation {
	out := make([]models.ABTestVariation, 0, len(emojiLevels))
	for _, level := range emojiLevels {
		content := base.Content
		if level == "none" {
			content = analysis.StripEmoji(content)
		}
		out = append(out, e.variation("emoji_"+level, content, base.Hashtags, base))
	}
	return out
}

func (e *Engine) hashtagVariations(base BaseContent) []models.ABTestVariation {
	tags := nonNil(base.Hashtags)
	out := make([]models.ABTestVariation, 0, len(hashtagStrategies))
	for _, s := range hashtagStrategies {
		var selected []string
		switch s.name {
		case "focused":
			selected = head(tags, s.min)
		case "broad":
			selected = head(dedupe(concat(tags, broadTags)), s.max)
		case "niche":
			selected = dedupe(concat(nicheTags, head(tags, 3)))
		case "trending":
			selected = head(dedupe(concat(trendingTags, tags)), s.max)
		}
		out = append(out, e.variation("hashtag_"+s.name, base.Content, selected, base))
	}
	return out
}

func (e *Engine) defaultVariations(base BaseContent) []models.ABTestVariation {
	lines := strings.Split(base.Content, "\n")
	if len(lines) > 1 {
		lines[0] = defaultHookLine
		lines[len(lines)-1] = defaultCTALine
	}
	return []models.ABTestVariation{
		e.variation("variation_a", base.Content, base.Hashtags, base),
		e.variation("variation_b", strings.Join(lines, "\n"), head(nonNil(base.Hashtags), defaultTagLimit), base),
	}
}

// Strategy describes one entry of the variation catalogue
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlatformGuide gives posting guidance per platform
type PlatformGuide struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OptimalHashtags string `json:"optimal_hashtags"`
	OptimalLength   string `json:"optimal_length"`
}

// Catalogue lists what can be varied and for which content and platforms
type Catalogue struct {
	VariationTypes []Strategy      `json:"variation_types"`
	ContentTypes   []Strategy      `json:"content_types"`
	Platforms      []PlatformGuide `json:"platforms"`
	CTAStyles      []string        `json:"cta_styles"`
	EmojiLevels    []string        `json:"emoji_levels"`
	HashtagModes   []string        `json:"hashtag_strategies"`
}

// Strategies returns the variation catalogue
func Strategies() Catalogue {
	c := Catalogue{
		VariationTypes: []Strategy{
			{TypeHooks, "Opening Hooks", "Test different opening lines and attention grabbers"},
			{TypeCTAStyles, "Call-to-Action Styles", "Test different call-to-action approaches (direct, soft, urgent)"},
			{TypeEmojiStyles, "Emoji Usage", "Test different levels of emoji usage"},
			{TypeHashtagStrategies, "Hashtag Strategies", "Test different hashtag approaches (focused, broad, niche)"},
		},
		ContentTypes: []Strategy{
			{models.ContentTypePropertyShowcase, "Property Showcase", "Posts featuring specific properties"},
			{models.ContentTypeMarketUpdate, "Market Update", "Market trends and analysis posts"},
			{models.ContentTypeEducational, "Educational", "Tips and educational content"},
			{models.ContentTypeCommunity, "Community", "Local community and neighborhood content"},
		},
		Platforms: []PlatformGuide{
			{models.PlatformInstagram, "Instagram", "8-12", "100-300 characters"},
			{models.PlatformFacebook, "Facebook", "2-5", "100-500 characters"},
		},
		EmojiLevels: slices.Clone(emojiLevels),
	}
	for _, s := range ctaStyles {
		c.CTAStyles = append(c.CTAStyles, s.name)
	}
	for _, s := range hashtagStrategies {
		c.HashtagModes = append(c.HashtagModes, s.name)
	}
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func head(s []string, n int) []string {
	if len(s) > n {
		return slices.Clone(s[:n])
	}
	return slices.Clone(s)
}

func concat(a, b []string) []string {
	return append(slices.Clone(a), b...)
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
