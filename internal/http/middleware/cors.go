package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/rajgarments/storefront/pkg/correlationid"
)

func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			correlationid.Header,
			UserIDHeader,
			UserAdminHeader,
		},
		ExposedHeaders: []string{correlationid.Header},
		MaxAge:         300,
	})
}
