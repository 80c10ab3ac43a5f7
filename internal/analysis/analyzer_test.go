package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyInputReturnsDefault(t *testing.T) {
	for _, input := range [][]string{nil, {}, {"   ", "\n"}} {
		b := Analyze(input)
		assert.Equal(t, 0, b.SampleCount)
		assert.Equal(t, 70.0, b.Tone[ToneProfessional])
		assert.Equal(t, 15.0, b.Structure.AvgSentenceLength)
		assert.NotNil(t, b.CTAPatterns)
	}
}

func TestAnalyzeTone_SumsToHundred(t *testing.T) {
	scores := analyzeTone([]string{
		"Amazing opportunity today! Learn about the market with expert guidance.",
		"Hey, honestly I think you should act now.",
	})

	total := 0.0
	for _, tone := range Tones {
		assert.GreaterOrEqual(t, scores[tone], 0.0)
		total += scores[tone]
	}
	assert.InDelta(t, 100.0, total, 0.01)
}

func TestAnalyzeTone_IngVariant(t *testing.T) {
	scores := analyzeTone([]string{"We are servicing clients"})
	// "service" -> "servicing" is the only hit
	assert.Equal(t, 100.0, scores[ToneProfessional])
}

func TestAnalyzeTone_FallbackWhenNoHits(t *testing.T) {
	scores := analyzeTone([]string{"zzz qqq"})
	assert.Equal(t, 40.0, scores[ToneProfessional])
	assert.Equal(t, 30.0, scores[ToneFriendly])
	assert.Equal(t, 20.0, scores[ToneEducational])
	assert.Equal(t, 10.0, scores[ToneMotivational])
	assert.Equal(t, 0.0, scores[ToneUrgent])
	assert.Equal(t, 0.0, scores[ToneConversational])
}

func TestAnalyzeStructure(t *testing.T) {
	s := analyzeStructure([]string{"Is this your home? It is big and bright! Call me."})

	// lengths 4, 5, 2
	assert.InDelta(t, 11.0/3.0, s.AvgSentenceLength, 1e-9)
	assert.InDelta(t, 100.0/3.0, s.QuestionFrequency, 1e-9)
	assert.InDelta(t, 100.0/3.0, s.ExclamationFrequency, 1e-9)
	assert.InDelta(t, 100.0/3.0, s.CompoundSentenceFrequency, 1e-9)
	assert.InDelta(t, math.Sqrt(7.0/3.0), s.SentenceLengthStdDev, 1e-9)
}

func TestAnalyzeStructure_SingleSentenceHasZeroStdDev(t *testing.T) {
	s := analyzeStructure([]string{"Just one sentence here"})
	assert.Equal(t, 0.0, s.SentenceLengthStdDev)
	assert.Equal(t, 4.0, s.AvgSentenceLength)
}

func TestAnalyzeVocabulary(t *testing.T) {
	v := analyzeVocabulary([]string{"The home, the HOME and the yard!"})

	// tokens: the home the home and the yard
	assert.Equal(t, 4, v.VocabularySize)
	assert.InDelta(t, 4.0/7.0, v.UniqueWordRatio, 1e-9)
	assert.InDelta(t, (3+4+3+4+3+3+4)/7.0, v.AvgWordLength, 1e-9)
	require.Len(t, v.MostCommonWords, 2)
	assert.Equal(t, WordCount{Word: "home", Count: 2}, v.MostCommonWords[0])
	assert.Equal(t, "yard", v.MostCommonWords[1].Word)
}

func TestAnalyzeVocabulary_RatioBounds(t *testing.T) {
	batches := [][]string{
		{"a"},
		{"same same same same"},
		{"every word differs here"},
		{"🏡🏡 !!!"},
	}
	for _, batch := range batches {
		v := analyzeVocabulary(batch)
		assert.GreaterOrEqual(t, v.UniqueWordRatio, 0.0)
		assert.LessOrEqual(t, v.UniqueWordRatio, 1.0)
	}
}

func TestAnalyzePunctuation(t *testing.T) {
	p := analyzePunctuation([]string{"Hi, you!"})
	assert.InDelta(t, 12.5, p[","], 1e-9)
	assert.InDelta(t, 12.5, p["!"], 1e-9)
	_, hasPeriod := p["."]
	assert.False(t, hasPeriod)
}

func TestAnalyzeEmoji(t *testing.T) {
	e := analyzeEmoji([]string{"🏡 New home in the heart of Windsor today ✨", "No emoji here"})

	assert.Equal(t, 1.0, e.PerSample)
	assert.Equal(t, 2, e.Diversity)
	assert.Equal(t, 1, e.Positions["beginning"])
	assert.Equal(t, 1, e.Positions["end"])
	require.Len(t, e.MostUsed, 2)
	assert.Equal(t, "🏡", e.MostUsed[0].Emoji)
}

func TestExtractPatterns(t *testing.T) {
	texts := []string{
		"Hello Windsor! New listing on Ottawa St. Contact me for a tour. Thanks for reading!",
		"Hello Windsor! Prices are up. DM me to learn more",
		"History of our city is rich. Schedule a visit.",
	}

	ctas := extractCTAs(texts)
	assert.Contains(t, ctas, "Contact me for a tour")
	assert.Contains(t, ctas, "DM me to learn more")
	assert.Contains(t, ctas, "Schedule a visit")

	greetings := extractGreetings(texts)
	assert.Equal(t, []string{"Hello Windsor"}, greetings)

	closings := extractClosings(texts)
	assert.Equal(t, []string{"Thanks for reading"}, closings)
}

func TestAnalyzeThemes_CountsSamplesContainingPhrase(t *testing.T) {
	themes := analyzeThemes([]string{
		"Just listed! Open house Sunday. Just listed again.",
		"Open house this weekend",
	})
	require.NotEmpty(t, themes)
	assert.Equal(t, ThemeCount{Phrase: "open house", Count: 2}, themes[0])
	assert.Equal(t, ThemeCount{Phrase: "just listed", Count: 1}, themes[1])
}

func TestAnalyzeWriting(t *testing.T) {
	w := analyzeWriting([]string{"However, this is fine. Yeah it is cool"})
	assert.InDelta(t, 100.0/3.0, w.FormalityScore, 1e-9)
	assert.Equal(t, 8, w.TotalWordCount)
	assert.Equal(t, 4.0, w.AvgWordsPerSentence)
	assert.GreaterOrEqual(t, w.ReadabilityScore, 0.0)
	assert.LessOrEqual(t, w.ReadabilityScore, 100.0)
}

func TestSplitSentences_KeepsTerminator(t *testing.T) {
	sentences := SplitSentences("Ready?! Yes... ok")
	require.Len(t, sentences, 3)
	assert.Equal(t, Sentence{Text: "Ready", Terminator: "?!"}, sentences[0])
	assert.Equal(t, "...", sentences[1].Terminator)
	assert.Equal(t, "", sentences[2].Terminator)
}

func TestStripEmoji(t *testing.T) {
	assert.Equal(t, "Just listed!\nCall today", StripEmoji("🏡 Just listed! ✨\nCall today 📞"))
	assert.Equal(t, "Love it", StripEmoji("Love ❤️ it"))
}
