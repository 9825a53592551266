package api

const (
	// HealthStatusHealthy is the only status the health endpoint reports.
	HealthStatusHealthy = "healthy"
	// HealthTimestamp is a fixed value, the health payload is not computed.
	HealthTimestamp = "2025-01-01T00:00:00Z"
	// HealthVersion is the API version reported by the health endpoint.
	HealthVersion = "1.0.0"
	// HealthResearch labels the research model this service mocks.
	HealthResearch = "Park et al. (2017) ML Implementation"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Research  string `json:"research"`
}

// NewHealthResponse returns the fixed health payload.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: HealthTimestamp,
		Version:   HealthVersion,
		Research:  HealthResearch,
	}
}

// StatusResponse represents the runtime status of the service
type StatusResponse struct {
	Service       string `json:"service"`
	Version       string `json:"version"`
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}
