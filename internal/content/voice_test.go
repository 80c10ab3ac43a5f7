package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brand-voice-studio/internal/analysis"
)

func TestGenerateWithVoice(t *testing.T) {
	tests := []struct {
		name        string
		profile     analysis.VoiceProfile
		contentType string
		want        string
	}{
		{
			name: "friendly with questions and emoji",
			profile: analysis.VoiceProfile{
				DominantTone:      analysis.ToneFriendly,
				WritingStyle:      analysis.StyleConcise,
				PersonalityTraits: []analysis.Tone{analysis.ToneFriendly},
				CommunicationPreferences: analysis.CommunicationPreferences{
					UsesQuestions: true,
					UsesEmojis:    true,
				},
			},
			want: "Hey there! 👋 I'm so excited to talk about open houses! Bottom line: Would love to hear your experience! ✨",
		},
		{
			name: "professional detailed",
			profile: analysis.VoiceProfile{
				DominantTone:      analysis.ToneProfessional,
				WritingStyle:      analysis.StyleDetailed,
				PersonalityTraits: []analysis.Tone{analysis.ToneProfessional},
			},
			want: "As a professional in this field, I want to share some insights about open houses. Here are the key points to consider... Feel free to reach out if you have any questions.",
		},
		{
			name: "urgent falls back to generic greeting and opener",
			profile: analysis.VoiceProfile{
				DominantTone:      analysis.ToneUrgent,
				WritingStyle:      analysis.StyleBalanced,
				PersonalityTraits: []analysis.Tone{analysis.ToneUrgent, analysis.ToneMotivational},
				CommunicationPreferences: analysis.CommunicationPreferences{
					UsesQuestions: true,
				},
			},
			want: "Hello! Let's discuss open houses. What are your thoughts? Let's discuss in the comments!",
		},
		{
			name: "non-social content has no greeting or cta",
			profile: analysis.VoiceProfile{
				DominantTone: analysis.ToneEducational,
				WritingStyle: analysis.StyleBalanced,
				CommunicationPreferences: analysis.CommunicationPreferences{
					UsesQuestions: true,
					UsesEmojis:    true,
				},
			},
			contentType: "blog_post",
			want:        "Let me share what you need to know about open houses. ✨",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateWithVoice("open houses", tt.profile, tt.contentType))
		})
	}
}
