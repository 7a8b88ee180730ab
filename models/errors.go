package models

// Failure reasons surfaced in error responses
const (
	ReasonValidation = "ValidationError"
	ReasonRequest    = "RequestError"
	ReasonLogin      = "LoginError"
	ReasonAuth       = "AuthError"
)

// AppError is a classified failure that maps directly to an HTTP response.
// Location names the offending request field for validation failures.
type AppError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError builds a 422 business-rule or input failure
func NewValidationError(message, location string) *AppError {
	return &AppError{Code: 422, Reason: ReasonValidation, Message: message, Location: location}
}

// NewNotFoundError builds a 404 for an absent referenced entity
func NewNotFoundError() *AppError {
	return &AppError{Code: 404, Reason: ReasonRequest, Message: "Not Found"}
}

// NewLoginError builds the deliberately generic 401 credential failure
func NewLoginError() *AppError {
	return &AppError{Code: 401, Reason: ReasonLogin, Message: "Incorrect username or password"}
}
