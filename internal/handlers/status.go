package handlers

import (
	"time"

	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/pkg/api"
)

// HandleStatus handles GET /api/ml/status
func (h *Handlers) HandleStatus(ctx *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, w http_wrappers.ResponseWrapper) {

	w.WriteJSON(api.StatusResponse{
		Service:       h.serviceConfig.Service.Name,
		Version:       h.serviceConfig.Service.Version,
		Status:        "running",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}, constants.HTTPCodeOK)

}
