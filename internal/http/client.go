package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

var _ sellsy.Transport = (*Client)(nil)

// Client is the default sellsy.Transport. It posts multipart forms through
// go-retryablehttp with retries disabled.
type Client struct {
	verified *retryablehttp.Client
	insecure *retryablehttp.Client

	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     sellsy.Logger
	debug      bool
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger sellsy.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header sent when the request has none.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the timeout of the underlying HTTP clients.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces both underlying HTTP clients. TLS peer
// verification is then left to httpClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new HTTP client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		timeout:   constants.DefaultHTTPTimeout,
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	verifiedHTTP, insecureHTTP := client.httpClient, client.httpClient
	if client.httpClient == nil {
		verifiedHTTP = cleanhttp.DefaultPooledClient()
		verifiedHTTP.Timeout = client.timeout
		insecureHTTP = newInsecureHTTPClient(client.timeout)
	}

	client.verified = client.newRetryableClient(verifiedHTTP)
	client.insecure = client.newRetryableClient(insecureHTTP)

	return client
}

func newInsecureHTTPClient(timeout time.Duration) *http.Client {
	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // used only for non-https endpoints

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func (c *Client) newRetryableClient(httpClient *http.Client) *retryablehttp.Client {
	retryClient := &retryablehttp.Client{
		HTTPClient:   httpClient,
		RetryMax:     0,
		CheckRetry:   neverRetry,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	if c.logger != nil && c.debug {
		retryClient.Logger = &leveledLogger{logger: c.logger}
		retryClient.RequestLogHook = c.logRequest
		retryClient.ResponseLogHook = c.logResponse
	}

	return retryClient
}

func neverRetry(context.Context, *http.Response, error) (bool, error) {
	return false, nil
}

// Send posts req and returns the raw response. Non-2xx statuses are returned
// as responses, not errors.
func (c *Client) Send(ctx context.Context, req *sellsy.Request) (*sellsy.Response, error) {
	httpReq, err := NewRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" && httpReq.Header.Get(constants.HeaderUserAgent) == "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	client := c.insecure
	if req.VerifyPeer {
		client = c.verified
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &sellsy.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// ParseURI parses an absolute http or https URI.
func ParseURI(raw string) (*url.URL, error) {
	uri, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidURI, err)
	}

	switch strings.ToLower(uri.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnsupportedScheme, uri.Scheme)
	}

	if uri.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", constants.ErrInvalidURI, raw)
	}

	return uri, nil
}

// NewRequest builds the HTTP request for req: a multipart/form-data body
// made of req.Fields, carrying req.Header. The method defaults to POST.
func NewRequest(ctx context.Context, req *sellsy.Request) (*retryablehttp.Request, error) {
	uri, err := ParseURI(req.URL)
	if err != nil {
		return nil, err
	}

	contentType, body, err := EncodeMultipart(req.Fields)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, uri.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Header {
		httpReq.Header[key] = append([]string(nil), values...)
	}

	httpReq.Header.Set(constants.HeaderContentType, contentType)

	return httpReq, nil
}

// EncodeMultipart encodes fields, in order, as a multipart/form-data body and
// returns its content type.
func EncodeMultipart(fields []sellsy.FormField) (string, []byte, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		err := writer.WriteField(field.Name, field.Contents)
		if err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %w", field.Name, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return "", nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return writer.FormDataContentType(), buf.Bytes(), nil
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, attempt int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.Redacted(),
		"attempt": attempt,
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	fields := map[string]interface{}{
		"status": resp.StatusCode,
	}

	if resp.Request != nil {
		fields["url"] = resp.Request.URL.Redacted()
	}

	c.logger.Debug("HTTP Response", fields)
}

// leveledLogger bridges sellsy.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger sellsy.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
