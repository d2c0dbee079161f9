package http

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/recommend"
	"github.com/rajgarments/storefront/pkg/validator"
)

// Recommender ranks catalog products for a user or around a product.
type Recommender interface {
	ContentBased(ctx context.Context, userID string, limit int) []model.Product
	Collaborative(ctx context.Context, userID string, limit int) []model.Product
	Hybrid(ctx context.Context, userID string, limit int) []model.Product
	Similar(ctx context.Context, productID int64, limit int) []model.Product
}

// Assistant answers shopper questions. Both methods always return text.
type Assistant interface {
	Chat(ctx context.Context, message, userID string) string
	OutfitSuggestion(ctx context.Context, occasion, gender string, budget *decimal.Decimal) string
}

type aiHandler struct {
	cfg         config.Recommend
	validator   validator.Validator
	recommender Recommender
	assistant   Assistant
}

func newAIHandler(
	cfg config.Recommend,
	v validator.Validator,
	recommender Recommender,
	assistant Assistant,
) *aiHandler {
	return &aiHandler{
		cfg:         cfg,
		validator:   v,
		recommender: recommender,
		assistant:   assistant,
	}
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type outfitSuggestionRequest struct {
	Occasion string  `json:"occasion" validate:"required,max=100"`
	Gender   string  `json:"gender" validate:"required,max=50"`
	Budget   *string `json:"budget" validate:"omitempty,money"`
}

type outfitSuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

func (h *aiHandler) Recommendations(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	var (
		strategy  *string
		productID *int64
		limit     *int
	)
	if err := queryParam(r, "type", &strategy); err != nil {
		return response{}, err
	}
	if err := queryParam(r, "productId", &productID); err != nil {
		return response{}, err
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		return response{}, err
	}
	if limit != nil && *limit < 1 {
		return response{}, apperr.ValidationErr.WithMsg("limit must be at least 1")
	}

	kind := recommend.StrategyHybrid
	if strategy != nil {
		kind = *strategy
	}

	ctx := r.Context()
	var products []model.Product
	switch kind {
	case recommend.StrategyContent:
		products = h.recommender.ContentBased(ctx, user.ID, h.limit(limit, h.cfg.DefaultLimit))
	case recommend.StrategyCollaborative:
		products = h.recommender.Collaborative(ctx, user.ID, h.limit(limit, h.cfg.DefaultLimit))
	case recommend.StrategySimilar:
		if productID == nil {
			return response{}, apperr.ValidationErr.WithMsg("productId is required for similar recommendations")
		}
		products = h.recommender.Similar(ctx, *productID, h.limit(limit, h.cfg.DefaultLimit))
	default:
		products = h.recommender.Hybrid(ctx, user.ID, h.limit(limit, h.cfg.HybridLimit))
	}

	if products == nil {
		products = []model.Product{}
	}
	return jsonOK(products), nil
}

// limit resolves the requested result size, capped at the configured maximum.
func (h *aiHandler) limit(requested *int, def int) int {
	n := def
	if requested != nil {
		n = *requested
	}
	if h.cfg.MaxLimit > 0 && n > h.cfg.MaxLimit {
		n = h.cfg.MaxLimit
	}
	return n
}

func (h *aiHandler) Chat(r *http.Request) (response, error) {
	var req chatRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	reply := h.assistant.Chat(r.Context(), req.Message, optionalUserID(r))
	return jsonOK(chatResponse{Response: reply}), nil
}

func (h *aiHandler) OutfitSuggestion(r *http.Request) (response, error) {
	var req outfitSuggestionRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	suggestion := h.assistant.OutfitSuggestion(r.Context(), req.Occasion, req.Gender, parseMoney(req.Budget))
	return jsonOK(outfitSuggestionResponse{Suggestion: suggestion}), nil
}
