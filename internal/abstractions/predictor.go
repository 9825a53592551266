package abstractions

import (
	"context"
	"log/slog"

	"github.com/creativepathway/ml-service/pkg/api"
)

// Predictor interface defines the methods for scoring a user. Concrete implementations
// hold the specific aspects of how scores are produced. Handlers only see this interface.
type Predictor interface {
	WithLogger(logger *slog.Logger) Predictor
	Name() string
	Predict(ctx context.Context, userID any) (*api.Prediction, error)
}
