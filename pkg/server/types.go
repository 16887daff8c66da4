package server

import "time"

// ErrorResponse is the body of every error the API returns as JSON.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Endpoints []string  `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}
