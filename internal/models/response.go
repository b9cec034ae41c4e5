package models

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with an optional error list.
func Fail(message string, errs ...string) APIResponse {
	return APIResponse{Success: false, Message: message, Errors: errs}
}
