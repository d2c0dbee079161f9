package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rajgarments/storefront/internal/http/middleware"
)

func registerOpsRoutes(r chi.Router) {
	r.Get(middleware.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// ServeOps serves only the health and metrics endpoints. Worker binaries
// without an API use it to expose their collectors.
func ServeOps(ctx context.Context, port uint32, logger *slog.Logger) (CleanupFunc, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	registerOpsRoutes(r)

	return serve(ctx, port, r, logger.With(slog.String("service", "ops-http")))
}

func serve(ctx context.Context, port uint32, handler http.Handler, logger *slog.Logger) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second, // covers upstream LLM calls
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", slog.Any("error", err))
		}
	}()
	logger.Info("http server listening", slog.String("addr", srv.Addr))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}
