package analysis

import (
	"strings"
	"time"
)

// Report is the result of analyzing free text
type Report struct {
	Analysis        Bundle       `json:"analysis"`
	BrandProfile    VoiceProfile `json:"brand_profile"`
	Recommendations []string     `json:"recommendations"`
	ContentSamples  []string     `json:"content_samples"`
	AnalysisDate    time.Time    `json:"analysis_date"`
}

const maxReportSamples = 5

// SplitPosts turns raw input into samples. "posts" input is split on blank
// lines; any other content type is analyzed as a single sample.
func SplitPosts(content, contentType string) []string {
	if contentType != "posts" {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return []string{content}
	}

	var posts []string
	for _, p := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			posts = append(posts, p)
		}
	}
	return posts
}

// AnalyzeText analyzes content and assembles the full report
func AnalyzeText(content, contentType string, now time.Time) Report {
	samples := SplitPosts(content, contentType)
	return BuildReport(samples, now)
}

// BuildReport analyzes samples and assembles the full report
func BuildReport(samples []string, now time.Time) Report {
	bundle := Analyze(samples)
	profile := BuildProfile(bundle)

	shown := samples
	if len(shown) > maxReportSamples {
		shown = shown[:maxReportSamples]
	}
	if shown == nil {
		shown = []string{}
	}

	return Report{
		Analysis:        bundle,
		BrandProfile:    profile,
		Recommendations: Recommendations(bundle, profile),
		ContentSamples:  shown,
		AnalysisDate:    now,
	}
}

// Recommendations suggests how to make a voice more consistent
func Recommendations(b Bundle, p VoiceProfile) []string {
	if b.SampleCount == 0 {
		return []string{"Add more content to get better analysis"}
	}

	var recs []string
	if b.Tone[p.DominantTone] < 40 {
		recs = append(recs, "Consider developing a more consistent tone across your content")
	}
	if b.Structure.SentenceLengthStdDev > 10 {
		recs = append(recs, "Try to maintain more consistent sentence lengths for better readability")
	}
	if b.Structure.QuestionFrequency < 5 {
		recs = append(recs, "Consider adding more questions to increase audience engagement")
	}
	if p.BrandVoiceStrength < 70 {
		recs = append(recs, "Focus on developing a more distinctive and consistent brand voice")
	}
	if len(b.CTAPatterns) < 2 {
		recs = append(recs, "Include more clear calls-to-action in your content")
	}

	if len(recs) == 0 {
		recs = append(recs, "Your brand voice is well-developed and consistent!")
	}
	return recs
}

// SampleContent is a demonstration batch of posts for the sample analysis
const SampleContent = `🏡 Just listed! Beautiful 3-bedroom home in Windsor-Essex with stunning curb appeal and move-in ready condition.

This property features an open-concept layout, updated kitchen, and spacious backyard perfect for entertaining. Located in a quiet neighborhood with excellent schools nearby.

Thinking of buying or selling? I'm here to help guide you through every step of the process. With over 10 years of experience in the Windsor-Essex market, I provide personalized service and expert advice.

Ready to find your dream home? Let's chat! Send me a DM or call today. 📞✨

#WindsorEssexRealEstate #DreamHome #RealEstateExpert #HomeBuying #PropertyListing`

// DefaultVoiceProfile is used for voice-driven drafts when the caller supplies no profile
func DefaultVoiceProfile() VoiceProfile {
	return VoiceProfile{
		DominantTone:      ToneProfessional,
		WritingStyle:      StyleBalanced,
		PersonalityTraits: []Tone{ToneProfessional},
		CommunicationPreferences: CommunicationPreferences{
			UsesQuestions: true,
			UsesEmojis:    true,
		},
		VocabularyLevel:    "professional",
		BrandVoiceStrength: 65,
	}
}
