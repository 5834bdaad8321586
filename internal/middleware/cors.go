package middleware

import (
	"net/http"
	"strings"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/go-chi/cors"
)

// CORS allows the configured comma-separated origins to call the API
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	var origins []string
	for _, o := range strings.Split(cfg.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
