package services

// ServiceError represents a typed error with an HTTP status code. Fields
// carries per-field validation messages when the error is a validation
// failure.
type ServiceError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *ServiceError) Error() string {
	return e.Message
}
