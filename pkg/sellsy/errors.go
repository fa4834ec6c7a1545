package sellsy

import (
	"errors"
)

// RequestFailureError reports that a call could not be carried out: network
// failure, unreachable host, rejected OAuth credentials or an answer that is
// not JSON. Cause holds the underlying error when there is one.
type RequestFailureError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestFailureError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}

	return e.Message
}

// Unwrap returns the underlying cause.
func (e *RequestFailureError) Unwrap() error {
	return e.Cause
}

// ServiceError reports an error status returned by the Sellsy API itself.
// Message is the service's error message, or the raw answer body when the
// error could not be read in a known shape.
type ServiceError struct {
	Message string
	Code    string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return e.Message
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrAPIURLRequired    = errors.New("API URL is required")
	ErrUnknownResource   = errors.New("unknown resource")
	ErrMalformedAnswer   = errors.New("malformed answer")
	ErrEncodingEnvelope  = errors.New("encoding request envelope")
	ErrNoPublisher       = errors.New("audit publisher is required")
	ErrParamsNotObject   = errors.New("params must be a JSON object")
	ErrInvalidParamsJSON = errors.New("invalid params JSON")
)

// NewRequestFailure wraps cause into a RequestFailureError carrying the
// cause's message.
func NewRequestFailure(cause error) *RequestFailureError {
	return &RequestFailureError{Message: cause.Error(), Cause: cause}
}

// IsRequestFailure checks if the error is a request failure.
func IsRequestFailure(err error) bool {
	failure := &RequestFailureError{}

	return errors.As(err, &failure)
}

// IsServiceError checks if the error was returned by the Sellsy API.
func IsServiceError(err error) bool {
	serviceErr := &ServiceError{}

	return errors.As(err, &serviceErr)
}
