package constants

import "errors"

// Configuration errors.
var (
	ErrAPIURLRequired      = errors.New("API URL is required")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrConfigFileNotFound  = errors.New("configuration file not found")
	ErrMissingCredential   = errors.New("missing credential")
	ErrInvalidHTTPTimeout  = errors.New("http timeout must be greater than zero")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Parameter parsing errors.
var (
	ErrInvalidParamFormat   = errors.New("invalid parameter format, expected key=value")
	ErrParamsNotAnObject    = errors.New("parameters must be a JSON or YAML object")
	ErrConflictingParamArgs = errors.New("--params-json and --params-file are mutually exclusive")
)

// Transport errors.
var (
	ErrInvalidURI        = errors.New("invalid URI")
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
)
