package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Sellsy API endpoint and envelope.
const (
	// DefaultAPIURL is the public Sellsy RPC endpoint.
	DefaultAPIURL = "https://apifeed.sellsy.com/0/"

	// EnvelopeRequest is the value of the "request" form field.
	EnvelopeRequest = "1"

	// EnvelopeIOMode is the value of the "io_mode" form field.
	EnvelopeIOMode = "json"

	// FieldRequest, FieldIOMode and FieldDoIn name the envelope form fields.
	FieldRequest = "request"
	FieldIOMode  = "io_mode"
	FieldDoIn    = "do_in"

	// StatusError marks a failed answer.
	StatusError = "error"

	// OAuthProblemMarker flags an authentication failure in a raw answer body.
	OAuthProblemMarker = "oauth_problem"

	// InfosMethod returns account information.
	InfosMethod = "Infos.getInfos"
)

// OAuth1 PLAINTEXT signing.
const (
	// SignatureMethodPlaintext is the only signature method Sellsy accepts.
	SignatureMethodPlaintext = "PLAINTEXT"

	// OAuthVersion is the protocol version sent with each request.
	OAuthVersion = "1.0"

	// NonceRandomMax is the upper bound (inclusive) of the random part of a nonce.
	NonceRandomMax = 1_000_000
)

// HTTP header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderExpect        = "Expect"
	HeaderUserAgent     = "User-Agent"
	HeaderContentType   = "Content-Type"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "sellsy-client-go"

// UI and display constants.
const (
	// NotAvailable is displayed for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in any human readable output.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"
)

// Outcome labels for metrics and audit records.
const (
	OutcomeSuccess        = "success"
	OutcomeServiceError   = "service_error"
	OutcomeRequestFailure = "request_failure"
)

// Audit defaults.
const (
	// DefaultAuditSubject is the NATS subject audit records are published on.
	DefaultAuditSubject = "sellsy.calls"
)
