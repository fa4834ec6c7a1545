package sellsy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

// RequestInterceptor is called before a request is sent. Returning an error
// aborts the call with a RequestFailureError.
type RequestInterceptor func(ctx context.Context, req *Request) error

// Exchange describes a completed call.
type Exchange struct {
	Settings RequestSettings
	// Answer is set on success.
	Answer *Answer
	// Body is the raw answer body, nil when the transport failed.
	Body []byte
	// Err is a *RequestFailureError or a *ServiceError on failure.
	Err      error
	Duration time.Duration
}

// Outcome classifies the exchange as success, service_error or request_failure.
func (e *Exchange) Outcome() string {
	switch {
	case e.Err == nil:
		return constants.OutcomeSuccess
	case IsServiceError(e.Err):
		return constants.OutcomeServiceError
	default:
		return constants.OutcomeRequestFailure
	}
}

// ResponseObserver is called after each call completes. Observers cannot
// change the outcome of the call.
type ResponseObserver func(ctx context.Context, exchange *Exchange)

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors []RequestInterceptor
	responseObservers   []ResponseObserver
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors: make([]RequestInterceptor, 0),
		responseObservers:   make([]ResponseObserver, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseObserver adds a response observer to the chain.
func (c *InterceptorChain) AddResponseObserver(observer ResponseObserver) {
	c.responseObservers = append(c.responseObservers, observer)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// NotifyResponseObservers runs all response observers.
func (c *InterceptorChain) NotifyResponseObservers(ctx context.Context, exchange *Exchange) {
	for _, observer := range c.responseObservers {
		observer(ctx, exchange)
	}
}

// Common Interceptors

// LoggingInterceptor logs outbound calls by method name. Headers and call
// parameters are not logged.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		fields := map[string]interface{}{
			"url": req.URL,
		}

		if doIn, ok := req.Field(constants.FieldDoIn); ok {
			var envelope struct {
				Method string `json:"method"`
			}

			if json.Unmarshal([]byte(doIn), &envelope) == nil {
				fields["method"] = envelope.Method
			}
		}

		logger.Debug("API Request", fields)

		return nil
	}
}

// LoggingObserver logs completed calls.
func LoggingObserver(logger Logger) ResponseObserver {
	return func(ctx context.Context, exchange *Exchange) {
		fields := map[string]interface{}{
			"method":   exchange.Settings.Method,
			"outcome":  exchange.Outcome(),
			"duration": exchange.Duration.String(),
		}

		if exchange.Err != nil {
			fields["error"] = exchange.Err.Error()
			logger.Error("API Call Failed", fields)

			return
		}

		logger.Debug("API Call", fields)
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Header == nil {
			req.Header = make(http.Header)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		return nil
	}
}

// UserAgentInterceptor sets the User-Agent header.
func UserAgentInterceptor(userAgent string) RequestInterceptor {
	return HeaderInterceptor(map[string]string{constants.HeaderUserAgent: userAgent})
}
