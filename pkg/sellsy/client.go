package sellsy

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

// InvokerClient performs calls against the Sellsy API.
type InvokerClient interface {
	Caller
	// GetInfos returns account information (Infos.getInfos).
	GetInfos(ctx context.Context) (*Answer, error)
	// Collection returns the handle of a resource, nil for an unknown one.
	Collection(resource Resource) *Collection
}

// SettingsClient exposes the mutable endpoint and credentials.
type SettingsClient interface {
	APIURL() string
	SetAPIURL(apiURL string)
	Credentials() Credentials
	SetCredentials(credentials Credentials)
}

// DebugClient exposes the snapshot of the most recent call.
type DebugClient interface {
	// LastRequest returns the settings of the most recent call, nil before any call.
	LastRequest() *RequestSettings
	// LastAnswer returns the answer of the most recent successful call. It is
	// reset when a call starts, so it is nil after a failed call.
	LastAnswer() *Answer
}

// Client is the full Sellsy API client.
type Client interface {
	InvokerClient
	SettingsClient
	DebugClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Clock returns the current time. It is used to compute OAuth timestamps.
type Clock func() time.Time

// Config represents client configuration for building a sellsy.Client.
//
// # Authentication
//
// Every call is signed with the OAuth1 PLAINTEXT method: the signature is the
// consumer secret and the access token secret, percent-encoded and joined by
// "&". Use an https APIURL; PLAINTEXT relies on TLS for confidentiality.
//
// # Transport
//
// When Transport is nil the client sends requests through a go-retryablehttp
// client with retries disabled. TLS peer verification is requested only when
// APIURL starts with "https".
type Config struct {
	// APIURL: the Sellsy RPC endpoint. Defaults to the public endpoint.
	APIURL string
	// Credentials: the OAuth1 consumer and access token pairs.
	Credentials Credentials

	// HTTPTimeout: timeout of the default transport. Ignored with a custom Transport.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// Transport: optional transport replacing the default HTTP one.
	Transport Transport
	// Clock: optional time source used to sign requests. Defaults to time.Now.
	Clock Clock

	// RequestInterceptors run in order before each request is sent.
	RequestInterceptors []RequestInterceptor
	// ResponseObservers run in order after each call completes.
	ResponseObservers []ResponseObserver
}

// envSpec lists the environment variables read by ConfigFromEnv.
type envSpec struct {
	APIURL            string        `envconfig:"API_URL"             default:"https://apifeed.sellsy.com/0/"`
	ConsumerKey       string        `envconfig:"CONSUMER_KEY"`
	ConsumerSecret    string        `envconfig:"CONSUMER_SECRET"`
	AccessToken       string        `envconfig:"ACCESS_TOKEN"`
	AccessTokenSecret string        `envconfig:"ACCESS_TOKEN_SECRET"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT"        default:"30s"`
	UserAgent         string        `envconfig:"USER_AGENT"`
	Debug             bool          `envconfig:"DEBUG"`
}

// ConfigFromEnv builds a Config from SELLSY_* environment variables:
// SELLSY_API_URL, SELLSY_CONSUMER_KEY, SELLSY_CONSUMER_SECRET,
// SELLSY_ACCESS_TOKEN, SELLSY_ACCESS_TOKEN_SECRET, SELLSY_HTTP_TIMEOUT,
// SELLSY_USER_AGENT and SELLSY_DEBUG.
func ConfigFromEnv() (*Config, error) {
	var spec envSpec

	err := envconfig.Process("sellsy", &spec)
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return &Config{
		APIURL:      spec.APIURL,
		Credentials: NewCredentials(spec.ConsumerKey, spec.ConsumerSecret, spec.AccessToken, spec.AccessTokenSecret),
		HTTPTimeout: spec.HTTPTimeout,
		UserAgent:   spec.UserAgent,
		Debug:       spec.Debug,
	}, nil
}

// DefaultConfig returns a configuration targeting the public endpoint.
func DefaultConfig() *Config {
	return &Config{
		APIURL:      constants.DefaultAPIURL,
		HTTPTimeout: constants.DefaultHTTPTimeout,
	}
}
