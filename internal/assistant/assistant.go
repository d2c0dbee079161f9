package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/model"
)

const (
	chatMaxTokens     = 200
	chatTemperature   = 0.7
	outfitMaxTokens   = 150
	outfitTemperature = 0.8
)

const storeSystemPrompt = `You are a helpful customer service assistant for Raj Garments, a premium fashion store.

Store Information:
- We sell men's, women's, and kids' clothing
- Free shipping on orders over ₹999
- 30-day return policy
- Located in Mumbai, Maharashtra
- Phone: +91 98765 43210
- Email: info@rajgarments.com

%s
Guidelines:
- Be friendly, helpful, and professional
- Suggest products when relevant
- Help with size guides, shipping, returns, and general questions
- Keep responses concise and actionable
- Use Indian rupees (₹) for pricing
- If asked about specific products, suggest browsing categories

Respond to the user's message in a helpful and conversational way.`

const outfitPrompt = `Suggest a complete outfit from Raj Garments for a %s for %s.
%s
Consider Indian fashion preferences and our product categories:
- Shirts, Trousers, Suits for men
- Dresses, Sarees, Tops for women
- Casual wear for kids

Provide a brief, practical outfit suggestion.`

// CompletionRequest is one prompt sent to a language model. System may be
// empty.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer generates a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CartReader reads a user's cart to give the model customer context.
type CartReader interface {
	GetCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
}

// Assistant answers customer questions and suggests outfits. Without a
// Completer every call is served by the canned fallbacks.
type Assistant struct {
	completer Completer
	carts     CartReader
	logger    *slog.Logger
}

// New creates an Assistant. completer may be nil.
func New(completer Completer, carts CartReader, logger *slog.Logger) *Assistant {
	return &Assistant{
		completer: completer,
		carts:     carts,
		logger:    logger.With(slog.String("service", "assistant")),
	}
}

// Chat answers a customer message. userID may be empty for anonymous
// visitors.
func (a *Assistant) Chat(ctx context.Context, message, userID string) string {
	if a.completer == nil {
		repliesTotal.WithLabelValues(kindChat, sourceFallback).Inc()
		return FallbackChatResponse(message)
	}

	reply, err := a.completer.Complete(ctx, CompletionRequest{
		System:      fmt.Sprintf(storeSystemPrompt, a.customerContext(ctx, userID)),
		User:        message,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		a.logFailure(ctx, kindChat, err)
		repliesTotal.WithLabelValues(kindChat, sourceFallback).Inc()
		return FallbackChatResponse(message)
	}

	repliesTotal.WithLabelValues(kindChat, sourceModel).Inc()
	return reply
}

// OutfitSuggestion suggests an outfit for the occasion and gender, within
// budget when one is given.
func (a *Assistant) OutfitSuggestion(ctx context.Context, occasion, gender string, budget *decimal.Decimal) string {
	if a.completer == nil {
		repliesTotal.WithLabelValues(kindOutfit, sourceFallback).Inc()
		return OutfitSuggestionFallback(occasion, gender)
	}

	var budgetLine string
	if budget != nil && budget.IsPositive() {
		budgetLine = fmt.Sprintf("Budget: ₹%s\n", budget.String())
	}

	reply, err := a.completer.Complete(ctx, CompletionRequest{
		User:        fmt.Sprintf(outfitPrompt, gender, occasion, budgetLine),
		MaxTokens:   outfitMaxTokens,
		Temperature: outfitTemperature,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		a.logFailure(ctx, kindOutfit, err)
		repliesTotal.WithLabelValues(kindOutfit, sourceFallback).Inc()
		return OutfitSuggestionFallback(occasion, gender)
	}

	repliesTotal.WithLabelValues(kindOutfit, sourceModel).Inc()
	return reply
}

// customerContext describes the customer's cart. Lookup failures yield an
// empty context.
func (a *Assistant) customerContext(ctx context.Context, userID string) string {
	if userID == "" || a.carts == nil {
		return ""
	}

	items, err := a.carts.GetCartItems(ctx, userID)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to load customer context",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return ""
	}
	if len(items) == 0 {
		return ""
	}

	return fmt.Sprintf("Current cart: %d items, Total: ₹%s\n",
		len(items), model.CartTotal(items).StringFixed(2))
}

func (a *Assistant) logFailure(ctx context.Context, kind string, err error) {
	if err == nil {
		a.logger.WarnContext(ctx, "model returned an empty reply", slog.String("kind", kind))
		return
	}
	a.logger.WarnContext(ctx, "model call failed, serving fallback",
		slog.String("kind", kind),
		slog.Any("error", err),
	)
}
