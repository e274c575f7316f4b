package domain

// ValidationError reports a rejected input. Field identifies the offending
// request field so callers can surface it programmatically; Message is the
// full human-readable message returned to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
