package predictors

import (
	"fmt"
	"log/slog"

	"github.com/creativepathway/ml-service/internal/abstractions"
	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/predictors/static"
)

func NewPredictor(logger *slog.Logger, serviceConfig *config.Config) (abstractions.Predictor, error) {
	switch serviceConfig.Service.Predictor {
	case static.Name:
		return static.NewStaticPredictor(logger), nil
	default:
		return nil, fmt.Errorf("unsupported predictor %q", serviceConfig.Service.Predictor)
	}
}
