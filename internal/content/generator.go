package content

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/analysis"
	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/models"
)

const (
	recentLocationWindow = 5
	recentCTAWindow      = 3
	recentHashtagBatches = 20
	uniquenessWindow     = 10
	synonymProbability   = 0.3
	defaultTopic         = "real estate"
)

var placeholderRegex = regexp.MustCompile(`\{(\w+)\}`)

// Option configures a Generator
type Option func(*Generator)

// WithRand sets the random source, for reproducible output in tests
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithClock sets the time source used for season and time-of-day
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLimits sets the memory caps
func WithLimits(l Limits) Option {
	return func(g *Generator) {
		g.memory = NewMemory(l)
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(g *Generator) {
		g.log = logging.Component(logger, "content")
	}
}

// Generator produces templated posts while steering away from recently used
// locations, hooks, structures, CTAs and hashtags.
type Generator struct {
	// mu guards memory and rng
	mu     sync.Mutex
	memory *Memory
	rng    *rand.Rand
	now    func() time.Time
	log    *logrus.Entry
}

// NewGenerator creates a generator with default memory caps
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		memory: NewMemory(DefaultLimits()),
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:    time.Now,
		log:    logging.Component(nil, "content"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request describes a template-driven generation
type Request struct {
	ContentType  string            `json:"content_type"`
	Platform     string            `json:"platform"`
	Location     string            `json:"location,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// Generate produces one post for the request and records it in memory
func (g *Generator) Generate(req Request) (*models.GeneratedContent, error) {
	lib, ok := templates[req.ContentType]
	if !ok {
		return nil, apperr.Validation("unsupported content type %q", req.ContentType)
	}
	if req.Platform == "" {
		req.Platform = models.PlatformInstagram
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	location := req.Location
	if location == "" {
		location = g.freshLocation()
	}

	hook := g.pickAvoiding(lib.hooks, g.memory.recentHooks())
	structure := g.pickAvoiding(lib.structures, g.memory.recentTemplates())
	cta := g.freshCTA(req.ContentType)

	body := g.render(hook, structure, cta, location, req.CustomFields, now)
	body = g.applySynonyms(body)
	hashtags := g.hashtags(req.ContentType, location, req.Platform)
	uniqueness := g.uniqueness(body)
	id := contentID(body)

	g.memory.Record(HistoryEntry{
		ContentID:       id,
		ContentType:     req.ContentType,
		Template:        structure,
		Hook:            hook,
		CTA:             cta,
		Location:        location,
		Hashtags:        hashtags,
		Content:         body,
		UniquenessScore: uniqueness,
		Timestamp:       now,
	})

	g.log.WithFields(logrus.Fields{
		"content_type":  req.ContentType,
		"platform":      req.Platform,
		"generation_id": id,
		"uniqueness":    uniqueness,
	}).Debug("Content generated")

	return &models.GeneratedContent{
		Content:      body,
		Hashtags:     hashtags,
		ImagePrompt:  imagePrompt(req.ContentType, location, now),
		Platform:     req.Platform,
		Location:     location,
		ContentType:  req.ContentType,
		TemplateID:   templateID(req.ContentType, lib.structures, structure),
		GenerationID: id,
		Metadata: models.ContentMetadata{
			WordCount:           len(strings.Fields(body)),
			CharCount:           utf8.RuneCountInString(body),
			LocationMentions:    strings.Count(strings.ToLower(body), strings.ToLower(location)),
			ContentType:         req.ContentType,
			UniquenessScore:     uniqueness,
			EngagementPotential: EngagementPotential(body),
		},
		Timestamp: now,
	}, nil
}

func (g *Generator) freshLocation() string {
	recent := make(map[string]bool)
	for _, e := range g.memory.History(recentLocationWindow) {
		recent[e.Location] = true
	}
	return g.pickAvoiding(Locations, recent)
}

func (g *Generator) freshCTA(contentType string) string {
	recent := make(map[string]bool)
	for _, e := range g.memory.History(recentCTAWindow) {
		recent[e.CTA] = true
	}
	return g.pickAvoiding(ctaLibrary[ctaCategory(contentType)], recent)
}

// pickAvoiding picks a random option not in recent, or any option if all are recent
func (g *Generator) pickAvoiding(options []string, recent map[string]bool) string {
	var available []string
	for _, o := range options {
		if !recent[o] {
			available = append(available, o)
		}
	}
	if len(available) == 0 {
		available = options
	}
	return available[g.rng.IntN(len(available))]
}

func (g *Generator) render(hook, structure, cta, location string, custom map[string]string, now time.Time) string {
	season := Season(now)
	words := g.sample(seasonalWords[season], 2)
	timePhrase := g.sample(timeWords[TimeOfDay(now)], 1)[0]

	vars := []string{"{location}", location, "{topic}", defaultTopic}
	for k, v := range custom {
		vars = append(vars, "{"+k+"}", v)
	}
	fillHook := strings.NewReplacer(vars...)
	fillSection := strings.NewReplacer("{s1}", words[0], "{s2}", words[1], "{time}", timePhrase, "{location}", location)

	generic := 0
	return placeholderRegex.ReplaceAllStringFunc(structure, func(ph string) string {
		name := ph[1 : len(ph)-1]
		switch name {
		case "hook":
			return fillHook.Replace(hook)
		case "call_to_action":
			return cta
		}
		if v, ok := custom[name]; ok {
			return v
		}
		text, ok := sectionText[name]
		if !ok {
			text = genericSections[generic%len(genericSections)]
			generic++
		}
		return capitalizeFirst(fillSection.Replace(text))
	})
}

// sample returns n distinct elements
func (g *Generator) sample(options []string, n int) []string {
	perm := g.rng.Perm(len(options))
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(perm); i++ {
		out = append(out, options[perm[i]])
	}
	return out
}

// applySynonyms swaps known words for a synonym with fixed probability,
// keeping line breaks, surrounding punctuation and an initial capital.
func (g *Generator) applySynonyms(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		words := strings.Fields(line)
		for j, word := range words {
			words[j] = g.replaceWord(word)
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) replaceWord(word string) string {
	core := strings.Trim(word, ".,!?")
	if core == "" {
		return word
	}
	options, ok := synonyms[strings.ToLower(core)]
	if !ok || g.rng.Float64() >= synonymProbability {
		return word
	}
	replacement := options[g.rng.IntN(len(options))]
	if r, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(r) {
		replacement = capitalizeFirst(replacement)
	}
	start := strings.Index(word, core)
	return word[:start] + replacement + word[start+len(core):]
}

// hashtags picks a platform-sized set from the content-type, location and
// general pools, skipping tags used in recent batches when enough remain.
func (g *Generator) hashtags(contentType, location, platform string) []string {
	pool := dedupe(append(append(BaseHashtags(contentType), LocationHashtags(location)...), generalHashtags...))

	lo, hi := HashtagRange(platform)
	count := lo + g.rng.IntN(hi-lo+1)

	recent := g.memory.recentHashtags(recentHashtagBatches)
	var available []string
	for _, tag := range pool {
		if !recent[tag] {
			available = append(available, tag)
		}
	}
	if len(available) < count {
		available = pool
	}

	return g.sample(available, count)
}

// uniqueness is 1 minus the mean Jaccard overlap with recent generations
func (g *Generator) uniqueness(text string) float64 {
	words := wordSet(text)
	var total float64
	var n int
	for _, e := range g.memory.History(uniquenessWindow) {
		prev := wordSet(e.Content)
		if len(words) == 0 || len(prev) == 0 {
			continue
		}
		inter := 0
		for w := range words {
			if prev[w] {
				inter++
			}
		}
		union := len(words) + len(prev) - inter
		total += float64(inter) / float64(union)
		n++
	}
	if n == 0 {
		return 1.0
	}
	u := 1.0 - total/float64(n)
	return max(0, min(1, u))
}

// Analytics summarizes generation history
type Analytics struct {
	TotalGenerated    int               `json:"total_generated"`
	AverageUniqueness float64           `json:"average_uniqueness"`
	TemplateDiversity int               `json:"template_diversity"`
	MostUsedTemplate  string            `json:"most_used_template,omitempty"`
	ContentTypes      map[string]int    `json:"content_types"`
	MemoryUtilization map[string]string `json:"memory_utilization"`
}

// Analytics reports on what has been generated so far
func (g *Generator) Analytics() Analytics {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := g.memory.History(-1)
	a := Analytics{
		TotalGenerated:    len(history),
		ContentTypes:      make(map[string]int),
		MemoryUtilization: g.memory.Utilization(),
	}
	if len(history) == 0 {
		return a
	}

	usage := make(map[string]int)
	var sum float64
	best := 0
	for _, e := range history {
		usage[e.Template]++
		a.ContentTypes[e.ContentType]++
		sum += e.UniquenessScore
		if usage[e.Template] > best {
			best = usage[e.Template]
			a.MostUsedTemplate = templateID(e.ContentType, templates[e.ContentType].structures, e.Template)
		}
	}
	a.AverageUniqueness = sum / float64(len(history))
	a.TemplateDiversity = len(usage)
	return a
}

// MemorySizes returns the current size of each memory collection
func (g *Generator) MemorySizes() Limits {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.memory.Sizes()
}

// HashtagRange returns the inclusive tag count range for a platform
func HashtagRange(platform string) (int, int) {
	if platform == models.PlatformInstagram {
		return 8, 12
	}
	return 3, 5
}

// LocationHashtags derives tags such as #WindsorEssex and #WindsorEssexRealEstate
func LocationHashtags(location string) []string {
	tag := strings.NewReplacer(" ", "", "-", "").Replace(location)
	if tag == "" {
		return nil
	}
	return []string{"#" + tag, "#" + tag + "RealEstate", "#" + tag + "Homes"}
}

var (
	secondPerson     = map[string]bool{"you": true, "your": true, "yours": true, "yourself": true, "yourselves": true}
	engagementEmojis = []string{"🏡", "💡", "📊", "❤", "🌟"}
)

// EngagementPotential buckets a post as low, medium or high
func EngagementPotential(text string) string {
	score := 0
	if strings.Contains(text, "?") {
		score += 10
	}
	for _, tok := range analysis.Tokens(text) {
		if secondPerson[tok] {
			score += 15
			break
		}
	}
	for _, e := range engagementEmojis {
		if strings.Contains(text, e) {
			score += 10
			break
		}
	}
	if len(strings.Fields(text)) < 50 {
		score += 10
	}

	switch {
	case score >= 35:
		return "high"
	case score >= 20:
		return "medium"
	default:
		return "low"
	}
}

// Season maps a month to spring, summer, fall or winter
func Season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	default:
		return "winter"
	}
}

// TimeOfDay maps an hour to morning, afternoon or evening
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

func imagePrompt(contentType, location string, now time.Time) string {
	subject, ok := imageSubjects[contentType]
	if !ok {
		subject = "a bright modern home"
	}
	return fmt.Sprintf("Photo of %s in %s, %s %s light, warm and inviting", subject, location, Season(now), TimeOfDay(now))
}

func templateID(contentType string, structures []string, structure string) string {
	for i, s := range structures {
		if s == structure {
			return fmt.Sprintf("%s_%02d", contentType, i+1)
		}
	}
	return contentType
}

func contentID(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])[:8]
}

func wordSet(text string) map[string]bool {
	return toSet(strings.Fields(strings.ToLower(text)))
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

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
