package analysis

import (
	"regexp"
	"strings"
)

// ToneScores maps each tone to its share in [0,100]
type ToneScores map[Tone]float64

// Dominant returns the highest scoring tone, ties broken by the order of Tones
func (s ToneScores) Dominant() Tone {
	best := ToneProfessional
	bestScore := -1.0
	for _, tone := range Tones {
		if score, ok := s[tone]; ok && score > bestScore {
			best, bestScore = tone, score
		}
	}
	return best
}

// SentenceStructure summarizes sentence lengths and terminators
type SentenceStructure struct {
	AvgSentenceLength         float64 `json:"avg_sentence_length"`
	QuestionFrequency         float64 `json:"question_frequency"`
	ExclamationFrequency      float64 `json:"exclamation_frequency"`
	CompoundSentenceFrequency float64 `json:"compound_sentence_frequency"`
	SentenceLengthStdDev      float64 `json:"sentence_length_variance"`
}

// WordCount is a token and how often it appeared
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Vocabulary summarizes token usage
type Vocabulary struct {
	MostCommonWords []WordCount `json:"most_common_words"`
	VocabularySize  int         `json:"vocabulary_size"`
	AvgWordLength   float64     `json:"avg_word_length"`
	UniqueWordRatio float64     `json:"unique_word_ratio"`
}

// EmojiCount is an emoji and how often it appeared
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiUsage summarizes emoji frequency and placement
type EmojiUsage struct {
	MostUsed  []EmojiCount   `json:"most_used_emojis"`
	PerSample float64        `json:"emoji_frequency"`
	Positions map[string]int `json:"position_preferences"`
	Diversity int            `json:"emoji_diversity"`
}

// ThemeCount is a domain phrase and the number of samples containing it
type ThemeCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// WritingCharacteristics holds formality and readability estimates
type WritingCharacteristics struct {
	FormalityScore      float64 `json:"formality_score"`
	ReadabilityScore    float64 `json:"readability_score"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	TotalWordCount      int     `json:"total_word_count"`
}

// Bundle is the full analysis of a batch of samples
type Bundle struct {
	Tone             ToneScores             `json:"tone_analysis"`
	Structure        SentenceStructure      `json:"sentence_structure"`
	Vocabulary       Vocabulary             `json:"vocabulary_analysis"`
	Punctuation      map[string]float64     `json:"punctuation_patterns"`
	Emoji            EmojiUsage             `json:"emoji_patterns"`
	CTAPatterns      []string               `json:"cta_patterns"`
	GreetingPatterns []string               `json:"greeting_patterns"`
	ClosingPatterns  []string               `json:"closing_patterns"`
	Themes           []ThemeCount           `json:"content_themes"`
	Writing          WritingCharacteristics `json:"writing_characteristics"`
	BrandVoiceScore  int                    `json:"brand_voice_score"`
	SampleCount      int                    `json:"sample_count"`
}

const (
	maxPatterns    = 10
	maxCommonWords = 20
	maxEmoji       = 10
	maxThemes      = 15
	maxPatternLen  = 150
)

var (
	greetingRegex = regexp.MustCompile(`^(hey|hi|hello|good morning|good afternoon|welcome|greetings|happy|excited to)\b`)
	closingRegex  = regexp.MustCompile(`thank you|thanks|best regards|sincerely|talk soon|see you|have a great|cheers`)
)

// Analyze computes the analysis bundle for a batch of samples. Blank samples
// are ignored; no usable samples yields DefaultBundle.
func Analyze(samples []string) Bundle {
	texts := make([]string, 0, len(samples))
	for _, s := range samples {
		if strings.TrimSpace(s) != "" {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return DefaultBundle()
	}

	b := Bundle{
		Tone:             analyzeTone(texts),
		Structure:        analyzeStructure(texts),
		Vocabulary:       analyzeVocabulary(texts),
		Punctuation:      analyzePunctuation(texts),
		Emoji:            analyzeEmoji(texts),
		CTAPatterns:      extractCTAs(texts),
		GreetingPatterns: extractGreetings(texts),
		ClosingPatterns:  extractClosings(texts),
		Themes:           analyzeThemes(texts),
		Writing:          analyzeWriting(texts),
		SampleCount:      len(texts),
	}
	b.BrandVoiceScore = BrandVoiceStrength(b)
	return b
}

// DefaultBundle is returned when there is nothing to analyze
func DefaultBundle() Bundle {
	b := Bundle{
		Tone: ToneScores{
			ToneProfessional:   70,
			ToneFriendly:       20,
			ToneEducational:    10,
			ToneMotivational:   0,
			ToneUrgent:         0,
			ToneConversational: 0,
		},
		Structure: SentenceStructure{
			AvgSentenceLength:    15,
			QuestionFrequency:    5,
			ExclamationFrequency: 3,
		},
		Vocabulary: Vocabulary{
			MostCommonWords: []WordCount{},
			AvgWordLength:   5,
		},
		Punctuation: map[string]float64{".": 60, ",": 30, "!": 5, "?": 5},
		Emoji: EmojiUsage{
			MostUsed:  []EmojiCount{},
			Positions: map[string]int{},
		},
		CTAPatterns:      []string{},
		GreetingPatterns: []string{},
		ClosingPatterns:  []string{},
		Themes:           []ThemeCount{},
		Writing:          WritingCharacteristics{FormalityScore: 70, ReadabilityScore: 75},
	}
	b.BrandVoiceScore = BrandVoiceStrength(b)
	return b
}

func analyzeTone(texts []string) ToneScores {
	hits := make(map[Tone]int, len(Tones))
	total := 0
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, tone := range Tones {
			for _, kw := range toneKeywords[tone] {
				n := strings.Count(lower, kw)
				if strings.HasSuffix(kw, "e") {
					n += strings.Count(lower, strings.TrimSuffix(kw, "e")+"ing")
				}
				hits[tone] += n
				total += n
			}
		}
	}

	scores := make(ToneScores, len(Tones))
	if total == 0 {
		for tone, score := range fallbackTones {
			scores[tone] = score
		}
		return scores
	}
	for _, tone := range Tones {
		scores[tone] = float64(hits[tone]) / float64(total) * 100
	}
	return scores
}

func analyzeStructure(texts []string) SentenceStructure {
	var lengths []float64
	var questions, exclamations, compounds int

	for _, text := range texts {
		for _, s := range SplitSentences(text) {
			lengths = append(lengths, float64(len(strings.Fields(s.Text))))
			if strings.Contains(s.Terminator, "?") || strings.Contains(s.Text, "?") {
				questions++
			}
			if strings.Contains(s.Terminator, "!") || strings.Contains(s.Text, "!") {
				exclamations++
			}
			lower := " " + strings.ToLower(s.Text) + " "
			if strings.Contains(lower, " and ") || strings.Contains(lower, " but ") || strings.Contains(lower, " or ") {
				compounds++
			}
		}
	}

	if len(lengths) == 0 {
		return SentenceStructure{AvgSentenceLength: 15}
	}

	n := float64(len(lengths))
	return SentenceStructure{
		AvgSentenceLength:         mean(lengths),
		QuestionFrequency:         float64(questions) / n * 100,
		ExclamationFrequency:      float64(exclamations) / n * 100,
		CompoundSentenceFrequency: float64(compounds) / n * 100,
		SentenceLengthStdDev:      sampleStdDev(lengths),
	}
}

func analyzeVocabulary(texts []string) Vocabulary {
	all := newCounter()
	filtered := newCounter()
	var lengths []float64

	for _, text := range texts {
		for _, tok := range Tokens(text) {
			all.add(tok, 1)
			lengths = append(lengths, float64(runeLen(tok)))
			if !stopWords[tok] && runeLen(tok) > 2 {
				filtered.add(tok, 1)
			}
		}
	}

	v := Vocabulary{MostCommonWords: []WordCount{}, AvgWordLength: 5}
	for _, w := range filtered.top(maxCommonWords) {
		v.MostCommonWords = append(v.MostCommonWords, WordCount{Word: w, Count: filtered.counts[w]})
	}
	if len(lengths) == 0 {
		return v
	}
	v.VocabularySize = len(all.order)
	v.AvgWordLength = mean(lengths)
	v.UniqueWordRatio = float64(len(all.order)) / float64(len(lengths))
	return v
}

func analyzePunctuation(texts []string) map[string]float64 {
	counts := make(map[string]int)
	totalChars := 0
	for _, text := range texts {
		for _, r := range text {
			totalChars++
			if strings.ContainsRune(punctuationChars, r) {
				counts[string(r)]++
			}
		}
	}

	freq := make(map[string]float64, len(counts))
	if totalChars == 0 {
		return freq
	}
	for p, c := range counts {
		freq[p] = float64(c) / float64(totalChars) * 100
	}
	return freq
}

func analyzeEmoji(texts []string) EmojiUsage {
	emojis := newCounter()
	positions := make(map[string]int)
	total := 0

	for _, text := range texts {
		length := runeLen(text)
		idx := 0
		for _, r := range text {
			if IsEmoji(r) {
				emojis.add(string(r), 1)
				total++
				pos := float64(idx) / float64(length)
				switch {
				case pos < 0.2:
					positions["beginning"]++
				case pos > 0.8:
					positions["end"]++
				default:
					positions["middle"]++
				}
			}
			idx++
		}
	}

	usage := EmojiUsage{
		MostUsed:  []EmojiCount{},
		PerSample: float64(total) / float64(len(texts)),
		Positions: positions,
		Diversity: len(emojis.order),
	}
	for _, e := range emojis.top(maxEmoji) {
		usage.MostUsed = append(usage.MostUsed, EmojiCount{Emoji: e, Count: emojis.counts[e]})
	}
	return usage
}

// extractCTAs collects the first sentence containing each call-to-action phrase
func extractCTAs(texts []string) []string {
	var patterns []string
	seen := make(map[string]bool)
	for _, text := range texts {
		lower := strings.ToLower(text)
		sentences := SplitSentences(text)
		for _, indicator := range ctaIndicators {
			if !strings.Contains(lower, indicator) {
				continue
			}
			for _, s := range sentences {
				if strings.Contains(strings.ToLower(s.Text), indicator) {
					if !seen[s.Text] {
						seen[s.Text] = true
						patterns = append(patterns, s.Text)
					}
					break
				}
			}
		}
	}
	return capPatterns(patterns)
}

func extractGreetings(texts []string) []string {
	var patterns []string
	seen := make(map[string]bool)
	for _, text := range texts {
		sentences := SplitSentences(text)
		if len(sentences) == 0 {
			continue
		}
		first := sentences[0].Text
		if len(first) < maxPatternLen && greetingRegex.MatchString(strings.ToLower(first)) && !seen[first] {
			seen[first] = true
			patterns = append(patterns, first)
		}
	}
	return capPatterns(patterns)
}

func extractClosings(texts []string) []string {
	var patterns []string
	seen := make(map[string]bool)
	for _, text := range texts {
		sentences := SplitSentences(text)
		if len(sentences) == 0 {
			continue
		}
		last := sentences[len(sentences)-1].Text
		if len(last) < maxPatternLen && closingRegex.MatchString(strings.ToLower(last)) && !seen[last] {
			seen[last] = true
			patterns = append(patterns, last)
		}
	}
	return capPatterns(patterns)
}

func capPatterns(patterns []string) []string {
	if patterns == nil {
		return []string{}
	}
	if len(patterns) > maxPatterns {
		return patterns[:maxPatterns]
	}
	return patterns
}

func analyzeThemes(texts []string) []ThemeCount {
	themes := newCounter()
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, phrase := range industryPhrases {
			if strings.Contains(lower, phrase) {
				themes.add(phrase, 1)
			}
		}
	}

	result := []ThemeCount{}
	for _, phrase := range themes.top(maxThemes) {
		result = append(result, ThemeCount{Phrase: phrase, Count: themes.counts[phrase]})
	}
	return result
}

func analyzeWriting(texts []string) WritingCharacteristics {
	total := strings.Join(texts, " ")

	var formal, informal int
	for _, tok := range Tokens(total) {
		for _, m := range formalMarkers {
			if tok == m {
				formal++
			}
		}
		for _, m := range informalMarkers {
			if tok == m {
				informal++
			}
		}
	}

	formality := 50.0
	if formal+informal > 0 {
		formality = float64(formal) / float64(formal+informal) * 100
	}

	words := len(strings.Fields(total))
	wordsPerSentence := 15.0
	if n := len(SplitSentences(total)); n > 0 {
		wordsPerSentence = float64(words) / float64(n)
	}

	// Flesch reading ease with a fixed 1.5 syllables per word
	readability := clamp(206.835-1.015*wordsPerSentence-84.6*1.5, 0, 100)

	return WritingCharacteristics{
		FormalityScore:      formality,
		ReadabilityScore:    readability,
		AvgWordsPerSentence: wordsPerSentence,
		TotalWordCount:      words,
	}
}
