package domain

// Envelope is the backend's success body convention. The executor never enforces it.
type Envelope[T any] struct {
	Data      T      `json:"data"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorBody is the backend's failure body convention.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
