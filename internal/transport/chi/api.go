package chi

// ErrorCode is the machine-readable error code of an error response.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// YearRangeResponse is the body of GET /api/years-range.
type YearRangeResponse struct {
	MinYear *int `json:"minYear"`
	MaxYear *int `json:"maxYear"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
