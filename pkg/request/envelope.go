package request

// Envelope is the wire contract every backend endpoint honors: the payload sits
// in data, success reports the business-level outcome independent of the HTTP
// status, and code is a backend-defined status code (not an HTTP status).
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Page is the pagination shape list endpoints nest inside the envelope's data.
type Page[T any] struct {
	Records []T `json:"records"`
	Page    int `json:"page"`
	Size    int `json:"size"`
	Total   int `json:"total"`
}

// envelopeProbe decodes just the envelope frame. The Success pointer
// distinguishes a real envelope from arbitrary JSON that happens to decode.
type envelopeProbe struct {
	Code    int    `json:"code"`
	Success *bool  `json:"success"`
	Message string `json:"message"`
}
