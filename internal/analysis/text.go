package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// sentenceRegex matches a sentence body followed by its terminating punctuation run
var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]*`)

// tokenRegex matches word tokens with Unicode support
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Sentence is a trimmed sentence body and the punctuation run that ended it
type Sentence struct {
	Text       string
	Terminator string
}

// SplitSentences splits text on runs of '.', '!' and '?', dropping empty sentences
func SplitSentences(text string) []Sentence {
	var sentences []Sentence
	for _, m := range sentenceRegex.FindAllString(text, -1) {
		body := strings.TrimRight(m, ".!?")
		trimmed := strings.TrimSpace(body)
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, Sentence{Text: trimmed, Terminator: m[len(body):]})
	}
	return sentences
}

// Tokens lowercases text and returns its word tokens
func Tokens(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// IsEmoji reports whether r falls in the pictograph, emoticon, dingbat, symbol or flag ranges
func IsEmoji(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols & pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport & map
		return true
	case r >= 0x1F1E0 && r <= 0x1F1FF: // flags
		return true
	case r >= 0x1F900 && r <= 0x1F9FF, r >= 0x1FA70 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B05 && r <= 0x2B55: // arrows, stars
		return true
	}
	return false
}

// StripEmoji removes emoji along with joiners and variation selectors, and
// trims the whitespace left at line ends
func StripEmoji(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if IsEmoji(r) || r == 0xFE0F || r == 0x200D {
			return -1
		}
		return r
	}, text)

	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// runeLen counts code points
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// sampleStdDev returns the sample standard deviation, 0 for fewer than two values
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return sd
}

type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// top returns up to n keys by count descending, ties in first-seen order
func (c *counter) top(n int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
