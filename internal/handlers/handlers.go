package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/creativepathway/ml-service/internal/abstractions"
	"github.com/creativepathway/ml-service/internal/config"
)

// Contains the service state information that handlers can access
type Handlers struct {
	validate      *validator.Validate
	predictor     abstractions.Predictor
	serviceConfig *config.Config
	startedAt     time.Time
}

func New(validate *validator.Validate, predictor abstractions.Predictor, serviceConfig *config.Config) *Handlers {
	return &Handlers{
		validate:      validate,
		predictor:     predictor,
		serviceConfig: serviceConfig,
		startedAt:     time.Now(),
	}
}
