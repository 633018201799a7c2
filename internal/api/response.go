// Package api holds the JSON shapes shared by every HTTP handler.
package api

// MessageResponse is a plain {"msg": ...} body used for both informational
// and client-facing error messages.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// ErrorsResponse is the structured list returned for validation failures and
// for errors that the client form renders inline (duplicate email, bad credentials).
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// ServerError is the only body ever returned for unexpected failures.
var ServerError = MessageResponse{Msg: "Server Error"}

// Errors builds an ErrorsResponse from a single message.
func Errors(msg string) ErrorsResponse {
	return ErrorsResponse{Errors: []FieldError{{Msg: msg}}}
}
