package static

import (
	"context"
	"log/slog"

	"github.com/creativepathway/ml-service/internal/abstractions"
	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/pkg/api"
)

const Name = "static"

// Fixed scores, identical for every user.
var scores = api.Prediction{
	Attentiveness:      api.MetricScore{Score: 75.2, Confidence: 0.85},
	ScientificAttitude: api.MetricScore{Score: 78.1, Confidence: 0.82},
	Creativity:         api.MetricScore{Score: 72.5, Confidence: 0.80},
}

type StaticPredictor struct {
	logger *slog.Logger
}

func NewStaticPredictor(logger *slog.Logger) abstractions.Predictor {
	return &StaticPredictor{logger: logger}
}

func (p *StaticPredictor) WithLogger(logger *slog.Logger) abstractions.Predictor {
	return &StaticPredictor{logger: logger}
}

func (p *StaticPredictor) Predict(ctx context.Context, userID any) (*api.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Debug("Returning static prediction", constants.LOG_USER_ID, userID)
	prediction := scores
	return &prediction, nil
}

func (p *StaticPredictor) Name() string {
	return Name
}
