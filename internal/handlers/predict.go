package handlers

import (
	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serialization"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
	"github.com/creativepathway/ml-service/pkg/api"
)

// HandlePredict handles POST /api/ml/predict
func (h *Handlers) HandlePredict(ctx *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, w http_wrappers.ResponseWrapper) {
	var req api.PredictionRequest
	if err := serialization.DecodeRequest(h.validate, ctx, r, &req); err != nil {
		w.Error(err, ctx.RequestID)
		return
	}

	userID := req.GetUserID()
	logger := ctx.Logger.With(constants.LOG_USER_ID, userID, constants.LOG_PREDICTOR, h.predictor.Name())

	prediction, err := h.predictor.WithLogger(logger).Predict(ctx.Ctx, userID)
	if err != nil {
		w.Error(serviceerrors.NewServiceError(messages.PredictionFailed, "Predictor", h.predictor.Name(), "Error", err.Error()), ctx.RequestID)
		return
	}

	logger.Info("Prediction served")
	w.WriteJSON(api.NewPredictionResponse(userID, *prediction), constants.HTTPCodeOK)
}
