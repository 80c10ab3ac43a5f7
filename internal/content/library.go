package content

import "brand-voice-studio/internal/models"

type templateSet struct {
	hooks      []string
	structures []string
}

var templates = map[string]templateSet{
	models.ContentTypePropertyShowcase: {
		hooks: []string{
			"🏡 Just Listed in {location}!",
			"✨ New Property Alert - {location}!",
			"🔥 Hot Listing in {location}!",
			"💎 Gem Found in {location}!",
			"🌟 Featured Property - {location}!",
			"🏠 Dream Home in {location}!",
			"📍 Prime Location - {location}!",
			"🎯 Perfect Match in {location}!",
			"🔑 Your Next Home in {location}!",
			"💫 Stunning Property in {location}!",
		},
		structures: []string{
			"{hook}\n\n{property_highlights}\n\n{location_benefits}\n\n{call_to_action}",
			"{hook}\n\n{unique_features}\n\n{lifestyle_appeal}\n\n{call_to_action}",
			"{hook}\n\n{investment_angle}\n\n{market_context}\n\n{call_to_action}",
			"{hook}\n\n{emotional_appeal}\n\n{practical_benefits}\n\n{call_to_action}",
			"{hook}\n\n{neighborhood_focus}\n\n{property_value}\n\n{call_to_action}",
			"{hook}\n\n{buyer_persona_focus}\n\n{property_match}\n\n{call_to_action}",
			"{hook}\n\n{seasonal_appeal}\n\n{property_features}\n\n{call_to_action}",
			"{hook}\n\n{comparison_advantage}\n\n{unique_selling_points}\n\n{call_to_action}",
		},
	},
	models.ContentTypeMarketUpdate: {
		hooks: []string{
			"📊 {location} Market Update:",
			"📈 Latest Market Trends in {location}:",
			"💹 {location} Real Estate Insights:",
			"🏘️ Market Pulse - {location}:",
			"📋 Your {location} Market Brief:",
			"🎯 Market Focus: {location}",
			"💡 Market Intelligence - {location}:",
			"🔍 Market Analysis for {location}:",
			"📌 {location} Market Spotlight:",
			"⚡ Breaking Market News - {location}:",
		},
		structures: []string{
			"{hook}\n\n{market_data}\n\n{trend_analysis}\n\n{buyer_seller_advice}\n\n{call_to_action}",
			"{hook}\n\n{price_trends}\n\n{inventory_levels}\n\n{market_prediction}\n\n{call_to_action}",
			"{hook}\n\n{comparative_analysis}\n\n{opportunity_highlight}\n\n{call_to_action}",
			"{hook}\n\n{seasonal_trends}\n\n{timing_advice}\n\n{call_to_action}",
			"{hook}\n\n{market_drivers}\n\n{impact_explanation}\n\n{call_to_action}",
			"{hook}\n\n{buyer_market_conditions}\n\n{seller_market_conditions}\n\n{call_to_action}",
			"{hook}\n\n{interest_rate_impact}\n\n{market_response}\n\n{call_to_action}",
			"{hook}\n\n{local_economic_factors}\n\n{real_estate_correlation}\n\n{call_to_action}",
		},
	},
	models.ContentTypeEducational: {
		hooks: []string{
			"💡 Home Buying Tip:",
			"🎓 Real Estate 101:",
			"📚 Did You Know?",
			"🤔 Wondering About {topic}?",
			"💭 Common Question:",
			"🔍 Real Estate Myth Buster:",
			"📖 Educational Moment:",
			"🧠 Knowledge Drop:",
			"💪 Empower Your Decision:",
			"🎯 Pro Tip Alert:",
		},
		structures: []string{
			"{hook}\n\n{educational_content}\n\n{practical_application}\n\n{call_to_action}",
			"{hook}\n\n{myth_vs_reality}\n\n{correct_information}\n\n{call_to_action}",
			"{hook}\n\n{step_by_step_guide}\n\n{key_takeaways}\n\n{call_to_action}",
			"{hook}\n\n{common_mistake}\n\n{how_to_avoid}\n\n{call_to_action}",
			"{hook}\n\n{industry_insight}\n\n{client_benefit}\n\n{call_to_action}",
			"{hook}\n\n{process_explanation}\n\n{timeline_expectations}\n\n{call_to_action}",
			"{hook}\n\n{cost_breakdown}\n\n{budgeting_advice}\n\n{call_to_action}",
			"{hook}\n\n{legal_consideration}\n\n{protection_advice}\n\n{call_to_action}",
		},
	},
	models.ContentTypeCommunity: {
		hooks: []string{
			"❤️ Love Our {location} Community!",
			"🌟 Spotlight on {location}:",
			"🏘️ Why {location} is Special:",
			"📍 Local Favorite in {location}:",
			"🎉 Celebrating {location}:",
			"🌈 Community Pride - {location}:",
			"🏆 {location} Excellence:",
			"💖 Community Love - {location}:",
			"🎪 Local Events in {location}:",
			"🌻 {location} Lifestyle:",
		},
		structures: []string{
			"{hook}\n\n{community_feature}\n\n{resident_benefits}\n\n{call_to_action}",
			"{hook}\n\n{local_business_spotlight}\n\n{community_value}\n\n{call_to_action}",
			"{hook}\n\n{community_event}\n\n{participation_benefits}\n\n{call_to_action}",
			"{hook}\n\n{neighborhood_amenities}\n\n{lifestyle_appeal}\n\n{call_to_action}",
			"{hook}\n\n{community_achievement}\n\n{pride_factor}\n\n{call_to_action}",
			"{hook}\n\n{seasonal_community_activity}\n\n{engagement_opportunity}\n\n{call_to_action}",
			"{hook}\n\n{local_culture}\n\n{community_identity}\n\n{call_to_action}",
			"{hook}\n\n{community_support}\n\n{togetherness_message}\n\n{call_to_action}",
		},
	},
}

// ContentTypes returns the content types the generator has templates for
func ContentTypes() []string {
	return []string{
		models.ContentTypePropertyShowcase,
		models.ContentTypeMarketUpdate,
		models.ContentTypeEducational,
		models.ContentTypeCommunity,
	}
}

// Supported reports whether contentType has a template library
func Supported(contentType string) bool {
	_, ok := templates[contentType]
	return ok
}

var ctaLibrary = map[string][]string{
	"property_inquiry": {
		"DM me for exclusive details! 📩",
		"Ready for a private showing? Let's connect! 🔑",
		"Questions about this gem? I'm here to help! 💎",
		"Want the inside scoop? Message me! 📱",
		"Interested in learning more? Let's chat! 💬",
		"Ready to make this home yours? Reach out! 🏡",
		"Curious about the neighborhood? Let's explore! 🗺️",
		"Want to schedule a tour? I'm ready! 👥",
		"Need more photos? I've got them! 📸",
		"Ready to discuss your offer? Let's talk! 💼",
	},
	"market_consultation": {
		"Want a personalized market analysis? Let's connect! 📊",
		"Curious about your home's current value? Let's discuss! 💰",
		"Ready to explore your options? I'm here to guide! 🧭",
		"Need market insights for your area? Reach out! 📈",
		"Planning your next move? Let's strategize! 🎯",
		"Want to understand the trends? Let's dive deep! 🔍",
		"Ready for a market consultation? I'm available! 📅",
		"Thinking of buying or selling? Let's plan! 📋",
		"Want expert market guidance? I'm here! 🎓",
		"Ready to make informed decisions? Let's connect! 🤝",
	},
	"general_engagement": {
		"What's your take on this? Share below! 💭",
		"Have questions? Drop them in the comments! ⬇️",
		"Tag someone who needs to see this! 👥",
		"Save this for future reference! 🔖",
		"Share your experience in the comments! 💬",
		"What would you add to this list? Comment! ✍️",
		"Agree or disagree? Let me know! 🤷‍♀️",
		"Found this helpful? Share with friends! 🔄",
		"What's your biggest concern? Tell me! 😟",
		"Ready to take action? Let's go! 🚀",
	},
}

// ctaCategory maps a content type to its CTA library
func ctaCategory(contentType string) string {
	switch contentType {
	case models.ContentTypePropertyShowcase:
		return "property_inquiry"
	case models.ContentTypeMarketUpdate:
		return "market_consultation"
	default:
		return "general_engagement"
	}
}

var synonyms = map[string][]string{
	"beautiful":   {"stunning", "gorgeous", "magnificent", "breathtaking", "spectacular"},
	"amazing":     {"incredible", "fantastic", "wonderful", "remarkable", "outstanding"},
	"perfect":     {"ideal", "excellent", "superb", "flawless", "pristine"},
	"great":       {"excellent", "fantastic", "wonderful", "terrific", "superb"},
	"home":        {"house", "property", "residence", "dwelling", "abode"},
	"buy":         {"purchase", "acquire", "invest in", "secure", "obtain"},
	"sell":        {"market", "list", "offer", "present", "showcase"},
	"location":    {"area", "neighborhood", "district", "community", "region"},
	"opportunity": {"chance", "possibility", "prospect", "opening", "potential"},
}

var seasonalWords = map[string][]string{
	"spring": {"blooming", "fresh", "renewal", "growth", "vibrant"},
	"summer": {"sunny", "bright", "warm", "active", "outdoor"},
	"fall":   {"cozy", "comfortable", "harvest", "golden", "crisp"},
	"winter": {"warm", "inviting", "shelter", "comfort", "peaceful"},
}

var timeWords = map[string][]string{
	"morning":   {"start your day", "morning coffee", "sunrise", "fresh start"},
	"afternoon": {"midday", "lunch break", "afternoon light", "productive"},
	"evening":   {"sunset", "end of day", "relaxing", "peaceful evening"},
}

// Locations covers Windsor-Essex towns followed by Windsor neighborhoods
var Locations = []string{
	"Windsor", "Essex County", "Windsor-Essex", "Windsor Ontario",
	"Essex", "Kingsville", "Leamington", "Tecumseh", "LaSalle",
	"Amherstburg", "Belle River", "Harrow",
	"Downtown Windsor", "Walkerville", "Riverside", "South Windsor",
	"East Windsor", "West End", "Forest Glade", "Devonshire",
	"Sandwich", "University District", "Little Italy",
}

var baseHashtags = map[string][]string{
	models.ContentTypePropertyShowcase: {"#JustListed", "#NewListing", "#DreamHome", "#PropertyAlert", "#HomeForSale"},
	models.ContentTypeMarketUpdate:     {"#MarketUpdate", "#RealEstateNews", "#MarketTrends", "#PropertyMarket", "#MarketInsights"},
	models.ContentTypeEducational:      {"#RealEstateTips", "#HomeBuyingTips", "#PropertyAdvice", "#RealEstateEducation", "#HomeSellingTips"},
	models.ContentTypeCommunity:        {"#CommunityLove", "#LocalLife", "#Neighborhood", "#CommunitySpotlight", "#LocalBusiness"},
}

var generalHashtags = []string{"#RealEstate", "#Realtor", "#PropertyExpert", "#HomeExpert", "#RealEstateAgent"}

// BaseHashtags returns the content-type tags, falling back to the general set
func BaseHashtags(contentType string) []string {
	if tags, ok := baseHashtags[contentType]; ok {
		return append([]string(nil), tags...)
	}
	return append([]string(nil), generalHashtags...)
}

// sectionText fills body slots. {s1} and {s2} are seasonal words, {time} a
// time-of-day phrase.
var sectionText = map[string]string{
	"property_highlights":      "This {s1} property features {s2} spaces perfect for {time}.",
	"location_benefits":        "Living in {location} puts parks, schools and shopping minutes away.",
	"unique_features":          "From the {s1} kitchen to the {s2} backyard, every detail has been considered.",
	"lifestyle_appeal":         "Picture {time} in a {s1} home built around the way you live.",
	"investment_angle":         "Homes in {location} continue to hold their value, making this a {s1} long-term investment.",
	"market_context":           "With {s2} demand across {location}, well-priced listings are moving quickly.",
	"emotional_appeal":         "Some homes just feel right the moment you walk in, and this {s1} space is one of them.",
	"neighborhood_focus":       "{location} offers tree-lined streets and a {s1} sense of community.",
	"seasonal_appeal":          "This season brings out the {s1} character of this home.",
	"market_data":              "Current market conditions in {location} show {s1} trends with {s2} opportunities.",
	"trend_analysis":           "Buyers are responding to {s1} listings and sellers who price with the market.",
	"price_trends":             "Prices in {location} are tracking a {s1} pattern this month.",
	"inventory_levels":         "Inventory remains {s2}, so the right property still draws attention fast.",
	"seasonal_trends":          "This time of year typically brings {s1} activity to {location}.",
	"timing_advice":            "Timing matters: a {s2} plan beats waiting for the perfect moment.",
	"buyer_seller_advice":      "Buyers should get pre-approved early and sellers should price to the market.",
	"educational_content":      "Understanding the {s1} market dynamics can help you make {s2} decisions.",
	"practical_application":    "Start by setting a clear budget and a list of must-haves before you tour.",
	"common_mistake":           "One common mistake is skipping the home inspection to win a bidding war.",
	"how_to_avoid":             "Protect yourself with clear conditions and an experienced agent on your side.",
	"key_takeaways":            "Key takeaway: preparation turns a stressful process into a {s1} one.",
	"community_feature":        "The {location} community offers {s1} amenities and {s2} lifestyle opportunities.",
	"resident_benefits":        "Residents enjoy local events, friendly neighbors and easy access to everything they need.",
	"neighborhood_amenities":   "Parks, cafes and trails make {location} a {s1} place to call home.",
	"local_business_spotlight": "Local shops in {location} are the heart of what makes this area {s1}.",
}

var genericSections = []string{
	"Discover the {s1} advantages of {location}.",
	"There is a lot to love about {location} right now.",
	"It is the perfect time for {time} and a fresh look at {location}.",
	"Every neighborhood in {location} has its own {s2} story to tell.",
}

var imageSubjects = map[string]string{
	models.ContentTypePropertyShowcase: "a welcoming family home with a landscaped front yard",
	models.ContentTypeMarketUpdate:     "a residential street with a for-sale sign",
	models.ContentTypeEducational:      "a bright desk with house keys and a notebook",
	models.ContentTypeCommunity:        "a lively neighborhood park",
}
