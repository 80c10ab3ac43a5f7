package content

import (
	"fmt"
	"slices"
	"strings"

	"brand-voice-studio/internal/analysis"
)

// VoicePostType is the content type that gets a greeting and a CTA
const VoicePostType = "social_post"

var voiceGreetings = map[analysis.Tone]string{
	analysis.ToneFriendly:       "Hey there! 👋",
	analysis.ToneProfessional:   "Good morning,",
	analysis.ToneConversational: "Hi everyone!",
	analysis.ToneMotivational:   "Ready for something amazing?",
}

var voiceOpeners = map[analysis.Tone]string{
	analysis.ToneProfessional: "As a professional in this field, I want to share some insights about %s.",
	analysis.ToneFriendly:     "I'm so excited to talk about %s!",
	analysis.ToneEducational:  "Let me share what you need to know about %s.",
	analysis.ToneMotivational: "Here's how %s can help you achieve your goals:",
}

// GenerateWithVoice drafts a short post about prompt in the style of profile
func GenerateWithVoice(prompt string, profile analysis.VoiceProfile, contentType string) string {
	if contentType == "" {
		contentType = VoicePostType
	}
	social := contentType == VoicePostType

	var parts []string
	if social && profile.CommunicationPreferences.UsesQuestions {
		greeting, ok := voiceGreetings[profile.DominantTone]
		if !ok {
			greeting = "Hello!"
		}
		parts = append(parts, greeting)
	}

	opener, ok := voiceOpeners[profile.DominantTone]
	if !ok {
		opener = "Let's discuss %s."
	}
	parts = append(parts, fmt.Sprintf(opener, prompt))

	switch profile.WritingStyle {
	case analysis.StyleDetailed:
		parts = append(parts, "Here are the key points to consider...")
	case analysis.StyleConcise:
		parts = append(parts, "Bottom line:")
	}

	if social {
		switch {
		case slices.Contains(profile.PersonalityTraits, analysis.ToneMotivational):
			parts = append(parts, "What are your thoughts? Let's discuss in the comments!")
		case slices.Contains(profile.PersonalityTraits, analysis.ToneProfessional):
			parts = append(parts, "Feel free to reach out if you have any questions.")
		default:
			parts = append(parts, "Would love to hear your experience!")
		}
	}

	if profile.CommunicationPreferences.UsesEmojis {
		parts[len(parts)-1] += " ✨"
	}
	return strings.Join(parts, " ")
}
