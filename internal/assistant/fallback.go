package assistant

import (
	"fmt"
	"strings"
)

const (
	replyPricing  = "Our products are competitively priced with great quality. You can browse our collection to see current prices. We also offer free shipping on orders over ₹999!"
	replySizing   = "We offer various sizes for all our products. You can find size information on each product page. If you need help with sizing, please check our size guide or contact us at +91 98765 43210."
	replyShipping = "We offer free shipping on orders over ₹999. Standard delivery takes 3-5 business days. You can track your order once it's shipped."
	replyReturns  = "We have a 30-day return policy. Items can be returned in original condition with tags attached. Contact us for return instructions."
	replyBrowsing = "I'd be happy to help you find the perfect outfit! Browse our Men's, Women's, or Kids' collections. Our featured products section also showcases our best items."
	replyGreeting = "Hello! I'm here to help you with any questions about Raj Garments. You can ask me about products, sizing, shipping, returns, or anything else. How can I assist you today?"
)

type keywordRule struct {
	keywords []string
	reply    string
}

// chatRules are evaluated in order and the first match wins.
var chatRules = []keywordRule{
	{keywords: []string{"price", "cost"}, reply: replyPricing},
	{keywords: []string{"size", "fit"}, reply: replySizing},
	{keywords: []string{"shipping", "delivery"}, reply: replyShipping},
	{keywords: []string{"return", "exchange"}, reply: replyReturns},
	{keywords: []string{"recommend", "suggest"}, reply: replyBrowsing},
}

func (r keywordRule) match(message string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// FallbackChatResponse answers a customer message with a canned reply chosen
// by keyword. It is used when no model is configured or the model fails.
func FallbackChatResponse(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		if rule.match(lower) {
			return rule.reply
		}
	}
	return replyGreeting
}

type occasionBucket string

const (
	occasionFormal occasionBucket = "formal"
	occasionParty  occasionBucket = "party"
	occasionCasual occasionBucket = "casual"
)

var outfitSuggestions = map[occasionBucket]map[string]string{
	occasionFormal: {
		"men":   "For formal occasions, try our premium shirts with dress trousers and a blazer.",
		"women": "Consider our elegant dresses or formal tops with trousers for a professional look.",
		"kids":  "Our formal kids collection includes smart shirts and trousers for special occasions.",
	},
	occasionCasual: {
		"men":   "Our casual shirts with comfortable trousers or jeans work great for everyday wear.",
		"women": "Try our casual tops with jeans or comfortable dresses from our collection.",
		"kids":  "Our kids casual wear includes comfortable t-shirts and shorts for daily activities.",
	},
	occasionParty: {
		"men":   "For parties, check out our stylish shirts with designer trousers.",
		"women": "Our party dresses and ethnic wear are perfect for celebrations.",
		"kids":  "Our kids party wear includes colorful outfits perfect for special events.",
	},
}

func classifyOccasion(occasion string) occasionBucket {
	lower := strings.ToLower(occasion)
	switch {
	case strings.Contains(lower, "formal"):
		return occasionFormal
	case strings.Contains(lower, "party"):
		return occasionParty
	default:
		return occasionCasual
	}
}

// OutfitSuggestionFallback returns a canned outfit suggestion for the
// occasion and gender. Unknown genders get a generic sentence quoting the
// inputs as given.
func OutfitSuggestionFallback(occasion, gender string) string {
	if s, ok := outfitSuggestions[classifyOccasion(occasion)][strings.ToLower(gender)]; ok {
		return s
	}
	return fmt.Sprintf("Browse our %s's collection for great %s outfit options!", gender, occasion)
}
