package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/creativepathway/ml-service/internal/abstractions"
	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/pkg/api"
)

type HealthInput struct{}

type PredictInput struct {
	UserID json.RawMessage `json:"userId,omitempty"`
}

// predictInputSchema leaves userId untyped: any value is echoed back as sent.
var predictInputSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"userId": {Description: "identifier echoed back in the prediction, defaults to unknown when omitted"},
	},
}

type tools struct {
	logger    *slog.Logger
	predictor abstractions.Predictor
}

// NewServer exposes the health and prediction endpoints as MCP tools.
func NewServer(logger *slog.Logger, predictor abstractions.Predictor, serviceConfig *config.ServiceConfig) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serviceConfig.Name,
		Version: serviceConfig.Version,
	}, nil)

	t := &tools{logger: logger, predictor: predictor}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "health",
		Description: "Report the health of the ML service",
	}, t.health)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "predict",
		Description: "Return the attentiveness, scientific attitude and creativity scores for a user",
		InputSchema: predictInputSchema,
	}, t.predict)

	return server
}

// NewHandler serves server over the streamable HTTP transport.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func (t *tools) health(ctx context.Context, req *mcp.CallToolRequest, in HealthInput) (*mcp.CallToolResult, api.HealthResponse, error) {
	return nil, api.NewHealthResponse(), nil
}

func (t *tools) predict(ctx context.Context, req *mcp.CallToolRequest, in PredictInput) (*mcp.CallToolResult, api.PredictionResponse, error) {
	userID := api.ResolveUserID(in.UserID)
	logger := t.logger.With(constants.LOG_USER_ID, userID, constants.LOG_PREDICTOR, t.predictor.Name())

	prediction, err := t.predictor.WithLogger(logger).Predict(ctx, userID)
	if err != nil {
		logger.Error("Prediction failed", constants.LOG_ERROR, err.Error())
		return nil, api.PredictionResponse{}, err
	}

	logger.Info("Prediction served over MCP")
	return nil, api.NewPredictionResponse(userID, *prediction), nil
}
