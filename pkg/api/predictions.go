package api

import (
	"bytes"
	"encoding/json"
)

const (
	// UnknownUserID is substituted when a prediction request has no userId key.
	UnknownUserID = "unknown"
	// PredictionResearch labels the pathway analysis the scores pretend to come from.
	PredictionResearch = "Park et al. (2017) pathway analysis"
)

// PredictionRequest is the body of POST /api/ml/predict. Every field is optional.
// UserID keeps the raw JSON so that any present value, null included, is echoed as sent.
type PredictionRequest struct {
	UserID json.RawMessage `json:"userId,omitempty"`
}

// GetUserID returns the requested user id or UnknownUserID when the key was not sent.
func (r *PredictionRequest) GetUserID() any {
	return ResolveUserID(r.UserID)
}

// ResolveUserID maps an absent user id to UnknownUserID and decodes any other value.
// Numbers are kept as json.Number so they are written back unchanged.
func ResolveUserID(raw json.RawMessage) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return UnknownUserID
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var userID any
	if err := decoder.Decode(&userID); err != nil {
		return UnknownUserID
	}
	return userID
}

// MetricScore is a single fabricated metric.
type MetricScore struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Prediction groups the creative personality factors.
type Prediction struct {
	Attentiveness      MetricScore `json:"attentiveness"`
	ScientificAttitude MetricScore `json:"scientificAttitude"`
	Creativity         MetricScore `json:"creativity"`
}

// PredictionResponse is the body returned by POST /api/ml/predict
type PredictionResponse struct {
	Success    bool       `json:"success"`
	UserID     any        `json:"userId"`
	Prediction Prediction `json:"prediction"`
	Research   string     `json:"research"`
}

func NewPredictionResponse(userID any, prediction Prediction) PredictionResponse {
	return PredictionResponse{
		Success:    true,
		UserID:     userID,
		Prediction: prediction,
		Research:   PredictionResearch,
	}
}
