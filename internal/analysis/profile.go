package analysis

import (
	"math"
	"sort"
)

// WritingStyle buckets average sentence length
type WritingStyle string

const (
	StyleConcise  WritingStyle = "concise"
	StyleBalanced WritingStyle = "balanced"
	StyleDetailed WritingStyle = "detailed"
)

// CommunicationPreferences are boolean habits derived from frequency thresholds
type CommunicationPreferences struct {
	UsesQuestions         bool `json:"uses_questions"`
	UsesExclamations      bool `json:"uses_exclamations"`
	UsesEmojis            bool `json:"uses_emojis"`
	PrefersShortSentences bool `json:"prefers_short_sentences"`
	PrefersLongSentences  bool `json:"prefers_long_sentences"`
}

// VoiceProfile is the compact summary of a brand voice. It is always derived
// from a Bundle and never stored.
type VoiceProfile struct {
	DominantTone             Tone                     `json:"dominant_tone"`
	WritingStyle             WritingStyle             `json:"writing_style"`
	PersonalityTraits        []Tone                   `json:"personality_traits"`
	CommunicationPreferences CommunicationPreferences `json:"communication_preferences"`
	VocabularyLevel          string                   `json:"vocabulary_level"`
	BrandVoiceStrength       int                      `json:"brand_voice_strength"`
}

const (
	traitThreshold = 20.0
	maxTraits      = 3
)

// BuildProfile derives a VoiceProfile from an analysis bundle
func BuildProfile(b Bundle) VoiceProfile {
	avg := b.Structure.AvgSentenceLength

	style := StyleBalanced
	switch {
	case avg < 10:
		style = StyleConcise
	case avg > 20:
		style = StyleDetailed
	}

	vocabLevel := "conversational"
	if b.Vocabulary.AvgWordLength > 5.5 {
		vocabLevel = "professional"
	}

	return VoiceProfile{
		DominantTone:      b.Tone.Dominant(),
		WritingStyle:      style,
		PersonalityTraits: personalityTraits(b.Tone),
		CommunicationPreferences: CommunicationPreferences{
			UsesQuestions:         b.Structure.QuestionFrequency > 10,
			UsesExclamations:      b.Structure.ExclamationFrequency > 5,
			UsesEmojis:            b.Emoji.PerSample > 0.5,
			PrefersShortSentences: avg < 12,
			PrefersLongSentences:  avg > 18,
		},
		VocabularyLevel:    vocabLevel,
		BrandVoiceStrength: BrandVoiceStrength(b),
	}
}

func personalityTraits(scores ToneScores) []Tone {
	var traits []Tone
	for _, tone := range Tones {
		if scores[tone] > traitThreshold {
			traits = append(traits, tone)
		}
	}
	if len(traits) == 0 {
		return []Tone{ToneProfessional}
	}

	sort.SliceStable(traits, func(i, j int) bool {
		return scores[traits[i]] > scores[traits[j]]
	})
	if len(traits) > maxTraits {
		traits = traits[:maxTraits]
	}
	return traits
}

// BrandVoiceStrength averages four consistency factors into a 0-100 score:
// dominant tone share, vocabulary repetition, sentence length stability and theme coverage.
func BrandVoiceStrength(b Bundle) int {
	dominant := 0.0
	for _, score := range b.Tone {
		dominant = math.Max(dominant, score)
	}

	themeScore := 50.0
	if len(b.Themes) > 0 {
		themeScore = math.Min(float64(len(b.Themes))*10, 100)
	}

	factors := []float64{
		math.Min(dominant, 100),
		(1 - b.Vocabulary.UniqueWordRatio) * 100,
		math.Max(0, 100-2*b.Structure.SentenceLengthStdDev),
		themeScore,
	}
	return int(math.Round(clamp(mean(factors), 0, 100)))
}
