// Package apierror defines the single error shape the API speaks. Every 4xx
// and 5xx body is built here, which keeps internals (driver errors, stack
// traces) from ever reaching a client.
package apierror

// APIError is the wire envelope. Detail is the human-readable message; Code
// is a stable kind clients can switch on without parsing Detail.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError reports per-field failures for 422 responses.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
