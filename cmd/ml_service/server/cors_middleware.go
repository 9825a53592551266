package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/constants"
)

var defaultCORSConfig = config.CORSConfig{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Content-Type", "Authorization", constants.HEADER_REQUEST_ID},
	MaxAge:         3600,
}

// CorsMiddleware answers preflight requests with 204 and adds the CORS
// headers to actual requests coming from an allowed origin.
func CorsMiddleware(next http.Handler, cfg *config.Config) http.Handler {
	corsConfig := &defaultCORSConfig
	if cfg != nil && cfg.CORS != nil {
		corsConfig = cfg.CORS
	}

	return cors.New(cors.Options{
		AllowedOrigins:       corsConfig.AllowedOrigins,
		AllowedMethods:       corsConfig.AllowedMethods,
		AllowedHeaders:       corsConfig.AllowedHeaders,
		ExposedHeaders:       []string{constants.HEADER_REQUEST_ID},
		AllowCredentials:     corsConfig.AllowCredentials,
		MaxAge:               corsConfig.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	}).Handler(next)
}
