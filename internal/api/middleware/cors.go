package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
)

// NewCORS allows the club frontends to call the API with a bearer token and to
// read the workbook filename and request ID from responses.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           600,
	})
}
