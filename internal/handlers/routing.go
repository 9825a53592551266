package handlers

import (
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
)

// HandleNotFound answers requests for unknown APIs
func (h *Handlers) HandleNotFound(ctx *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, w http_wrappers.ResponseWrapper) {
	w.Error(serviceerrors.NewServiceError(messages.RouteNotFound, "Api", r.Path()), ctx.RequestID)
}

// HandleMethodNotAllowed answers requests using the wrong method for a known API
func (h *Handlers) HandleMethodNotAllowed(ctx *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, w http_wrappers.ResponseWrapper) {
	w.Error(serviceerrors.NewServiceError(messages.MethodNotAllowed, "Method", r.Method(), "Api", r.Path()), ctx.RequestID)
}
