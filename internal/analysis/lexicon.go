package analysis

// Tone is a writing-tone category
type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneFriendly       Tone = "friendly"
	ToneEducational    Tone = "educational"
	ToneMotivational   Tone = "motivational"
	ToneUrgent         Tone = "urgent"
	ToneConversational Tone = "conversational"
)

// Tones lists every category in the fixed order used for tie-breaking
var Tones = []Tone{
	ToneProfessional,
	ToneFriendly,
	ToneEducational,
	ToneMotivational,
	ToneUrgent,
	ToneConversational,
}

var toneKeywords = map[Tone][]string{
	ToneProfessional: {
		"expertise", "experience", "professional", "service", "consultation",
		"analysis", "market", "investment", "strategy", "guidance", "qualified",
		"certified", "licensed", "proven", "results",
	},
	ToneFriendly: {
		"love", "excited", "happy", "amazing", "wonderful", "great",
		"fantastic", "awesome", "beautiful", "perfect", "thrilled",
		"delighted", "pleased", "enjoy",
	},
	ToneEducational: {
		"tip", "learn", "understand", "know", "important", "remember",
		"consider", "advice", "guide", "help", "explain", "teach",
		"inform", "educate",
	},
	ToneMotivational: {
		"achieve", "success", "dream", "goal", "opportunity", "potential",
		"future", "possible", "believe", "confidence", "inspire",
		"motivate", "empower",
	},
	ToneUrgent: {
		"now", "today", "immediately", "quick", "fast", "urgent",
		"limited", "hurry", "soon", "deadline", "act", "don't wait",
	},
	ToneConversational: {
		"hey", "hi", "hello", "you know", "let me tell you",
		"guess what", "by the way", "speaking of", "honestly",
		"personally", "i think", "in my opinion",
	},
}

// fallbackTones is used when no tone keyword appears at all
var fallbackTones = ToneScores{
	ToneProfessional:   40,
	ToneFriendly:       30,
	ToneEducational:    20,
	ToneMotivational:   10,
	ToneUrgent:         0,
	ToneConversational: 0,
}

// industryPhrases are the domain themes, real estate first
var industryPhrases = []string{
	"just listed", "new on the market", "price reduced", "open house",
	"under contract", "sold", "coming soon", "market update",
	"home buying tips", "selling your home", "first time buyer",
	"investment opportunity", "market analysis", "property value",
	"dream home", "perfect location", "move-in ready",
	"customer service", "quality products", "satisfaction guaranteed",
	"free consultation", "limited time offer", "special promotion",
	"contact us today", "learn more", "get started",
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true, "this": true,
	"that": true, "these": true, "those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true,
}

var ctaIndicators = []string{
	"contact me", "call me", "dm me", "message me", "text me",
	"reach out", "get in touch", "let's talk", "let's chat",
	"schedule", "book", "visit", "see more", "click here",
	"learn more", "find out", "discover", "explore",
	"sign up", "register", "subscribe", "follow",
}

const punctuationChars = `.,!?;:()[]{}"-'`

var (
	formalMarkers   = []string{"therefore", "however", "furthermore", "moreover", "consequently"}
	informalMarkers = []string{"gonna", "wanna", "yeah", "ok", "awesome", "cool"}
)
