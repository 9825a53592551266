package handlers

import (
	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/pkg/api"
)

// HandleHealth handles GET /api/ml/health
func (h *Handlers) HandleHealth(ctx *executioncontext.ExecutionContext, w http_wrappers.ResponseWrapper) {
	w.WriteJSON(api.NewHealthResponse(), constants.HTTPCodeOK)
}
