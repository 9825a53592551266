package api

// ErrorResponse is written for every request that does not succeed.
type ErrorResponse struct {
	Success     bool   `json:"success"`
	MessageCode string `json:"message_code"`
	Message     string `json:"message"`
	RequestID   string `json:"request_id,omitempty"`
	Timestamp   string `json:"timestamp"`
}
