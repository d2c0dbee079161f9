package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackChatResponse(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{message: "What is the price and shipping time?", expected: replyPricing},
		{message: "How much does it COST?", expected: replyPricing},
		{message: "Will a medium size fit me?", expected: replySizing},
		{message: "When is delivery?", expected: replyShipping},
		{message: "Can I exchange this shirt?", expected: replyReturns},
		{message: "I want to return my order, any shipping charge?", expected: replyShipping},
		{message: "Can you suggest something?", expected: replyBrowsing},
		{message: "hello", expected: replyGreeting},
		{message: "", expected: replyGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackChatResponse(tt.message))
		})
	}
}

func TestOutfitSuggestionFallback(t *testing.T) {
	t.Run("known gender", func(t *testing.T) {
		assert.Equal(t, outfitSuggestions[occasionFormal]["men"], OutfitSuggestionFallback("Formal Dinner", "Men"))
		assert.Equal(t, outfitSuggestions[occasionParty]["women"], OutfitSuggestionFallback("Birthday PARTY", "women"))
		assert.Equal(t, outfitSuggestions[occasionCasual]["kids"], OutfitSuggestionFallback("picnic", "Kids"))
	})

	t.Run("formal wins over party", func(t *testing.T) {
		assert.Equal(t, outfitSuggestions[occasionFormal]["women"], OutfitSuggestionFallback("formal party", "women"))
	})

	t.Run("unknown gender", func(t *testing.T) {
		got := OutfitSuggestionFallback("road trip", "robot")

		assert.Equal(t, "Browse our robot's collection for great road trip outfit options!", got)
	})

	t.Run("unknown gender keeps original case", func(t *testing.T) {
		got := OutfitSuggestionFallback("Road Trip", "Robot")

		assert.Contains(t, got, "Robot's")
		assert.Contains(t, got, "Road Trip")
	})
}
