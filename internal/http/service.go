package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/http/apierr"
	"github.com/rajgarments/storefront/internal/http/metric"
	"github.com/rajgarments/storefront/internal/http/middleware"
	"github.com/rajgarments/storefront/internal/http/swagger"
	"github.com/rajgarments/storefront/internal/service"
	"github.com/rajgarments/storefront/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Services groups the application services exposed over HTTP.
type Services struct {
	Products    service.ProductService
	Categories  service.CategoryService
	Carts       service.CartService
	Orders      service.OrderService
	Recommender Recommender
	Assistant   Assistant
}

// Service represents the HTTP service.
type Service struct {
	cfg          config.HTTP
	recommendCfg config.Recommend
	logger       *slog.Logger
	metrics      *metric.Metrics
	validator    validator.Validator

	svcs Services
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	recommendCfg config.Recommend,
	log *slog.Logger,
	svcs Services,
) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("new validator: %w", err)
	}

	return &Service{
		cfg:          cfg,
		recommendCfg: recommendCfg,
		logger:       log.With(slog.String("service", "http")),
		metrics:      metric.Default(),
		validator:    v,
		svcs:         svcs,
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// Handler builds the router with middlewares and all routes registered.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)
	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	return serve(ctx, s.cfg.Port, handler, s.logger)
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CORSAllowedOrigins),
		middleware.Logging(s.logger),
		middleware.Identity(),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	catalog := newCatalogHandler(s.validator, s.svcs.Categories, s.svcs.Products)
	cart := newCartHandler(s.validator, s.svcs.Carts)
	orders := newOrderHandler(s.validator, s.svcs.Orders)
	ai := newAIHandler(s.recommendCfg, s.validator, s.svcs.Recommender, s.svcs.Assistant)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handle(catalog.ListCategories))
			r.With(middleware.RequireAdmin()).Post("/", s.handle(catalog.CreateCategory))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handle(catalog.ListProducts))
			r.Get("/search", s.handle(catalog.SearchProducts))
			r.Get("/{id}", s.handle(catalog.GetProduct))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Post("/", s.handle(catalog.CreateProduct))
				r.Put("/{id}", s.handle(catalog.UpdateProduct))
				r.Delete("/{id}", s.handle(catalog.DeleteProduct))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireUser())
			r.Get("/", s.handle(cart.ListCartItems))
			r.Post("/", s.handle(cart.AddCartItem))
			r.Delete("/", s.handle(cart.ClearCart))
			r.Put("/{id}", s.handle(cart.UpdateCartItem))
			r.Delete("/{id}", s.handle(cart.RemoveCartItem))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireUser())
			r.Post("/", s.handle(orders.PlaceOrder))
			r.Get("/", s.handle(orders.ListOrders))
			r.Get("/{id}", s.handle(orders.GetOrder))
		})

		r.With(middleware.RequireUser()).Get("/recommendations", s.handle(ai.Recommendations))

		r.Route("/chat", func(r chi.Router) {
			r.Use(middleware.RateLimit(s.cfg.ChatRateLimit, s.cfg.ChatRateWindow))
			r.Post("/", s.handle(ai.Chat))
			r.Post("/outfit-suggestion", s.handle(ai.OutfitSuggestion))
		})
	})

	registerOpsRoutes(r)
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
