package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/sellsy-client/internal/auth"
	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	sellsyhttp "github.com/fivetwenty-io/sellsy-client/internal/http"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

var _ sellsy.Client = (*Client)(nil)

// Client implements the sellsy.Client interface.
type Client struct {
	mu          sync.RWMutex
	apiURL      string
	credentials sellsy.Credentials
	lastRequest *sellsy.RequestSettings
	lastAnswer  *sellsy.Answer

	transport   sellsy.Transport
	clock       sellsy.Clock
	signerOpts  []auth.SignerOption
	chain       *sellsy.InterceptorChain
	collections map[sellsy.Resource]*sellsy.Collection
}

// Option configures a Client beyond what sellsy.Config exposes.
type Option func(*Client)

// WithRandomSource sets the random source used for OAuth nonces.
func WithRandomSource(random auth.RandomSource) Option {
	return func(c *Client) {
		c.signerOpts = append(c.signerOpts, auth.WithRandomSource(random))
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *sellsy.Config) []sellsyhttp.Option {
	var httpOpts []sellsyhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, sellsyhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, sellsyhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, sellsyhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, sellsyhttp.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// createInterceptorChain installs the built-in interceptors followed by the
// configured ones.
func createInterceptorChain(config *sellsy.Config) *sellsy.InterceptorChain {
	chain := sellsy.NewInterceptorChain()

	// the default transport sets the user agent itself
	if config.Transport != nil && config.UserAgent != "" {
		chain.AddRequestInterceptor(sellsy.UserAgentInterceptor(config.UserAgent))
	}

	if config.Logger != nil && config.Debug {
		chain.AddRequestInterceptor(sellsy.LoggingInterceptor(config.Logger))
	}

	for _, interceptor := range config.RequestInterceptors {
		chain.AddRequestInterceptor(interceptor)
	}

	if config.Logger != nil {
		chain.AddResponseObserver(sellsy.LoggingObserver(config.Logger))
	}

	for _, observer := range config.ResponseObservers {
		chain.AddResponseObserver(observer)
	}

	return chain
}

// New creates a new Sellsy API client.
func New(config *sellsy.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, sellsy.ErrConfigRequired
	}

	if config.APIURL == "" {
		return nil, sellsy.ErrAPIURLRequired
	}

	transport := config.Transport
	if transport == nil {
		transport = sellsyhttp.NewClient(createHTTPClientOptions(config)...)
	}

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	client := &Client{
		apiURL:      config.APIURL,
		credentials: config.Credentials,
		transport:   transport,
		clock:       clock,
		chain:       createInterceptorChain(config),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.collections = sellsy.NewCollections(client)

	return client, nil
}

// Call implements sellsy.Caller.
func (c *Client) Call(ctx context.Context, method string, params any) (*sellsy.Answer, error) {
	settings := sellsy.RequestSettings{Method: method, Params: params}

	c.mu.Lock()
	recorded := settings
	c.lastRequest = &recorded
	c.lastAnswer = nil
	apiURL, credentials := c.apiURL, c.credentials
	c.mu.Unlock()

	start := time.Now()
	answer, body, err := c.invoke(ctx, apiURL, credentials, settings)

	if err == nil {
		c.mu.Lock()
		c.lastAnswer = answer
		c.mu.Unlock()
	}

	c.chain.NotifyResponseObservers(ctx, &sellsy.Exchange{
		Settings: settings,
		Answer:   answer,
		Body:     body,
		Err:      err,
		Duration: time.Since(start),
	})

	if err != nil {
		return nil, err
	}

	return answer, nil
}

func (c *Client) invoke(
	ctx context.Context,
	apiURL string,
	credentials sellsy.Credentials,
	settings sellsy.RequestSettings,
) (*sellsy.Answer, []byte, error) {
	doIn, err := json.Marshal(settings)
	if err != nil {
		return nil, nil, sellsy.NewRequestFailure(err)
	}

	signature := auth.NewSigner(credentials, c.signerOpts...).Sign(c.clock())

	req := &sellsy.Request{
		Method: http.MethodPost,
		URL:    apiURL,
		Header: signature.Header(),
		Fields: []sellsy.FormField{
			{Name: constants.FieldRequest, Contents: constants.EnvelopeRequest},
			{Name: constants.FieldIOMode, Contents: constants.EnvelopeIOMode},
			{Name: constants.FieldDoIn, Contents: string(doIn)},
		},
		VerifyPeer: VerifyPeer(apiURL),
	}

	err = c.chain.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, nil, sellsy.NewRequestFailure(err)
	}

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, nil, sellsy.NewRequestFailure(err)
	}

	answer, err := Interpret(resp.Body)

	return answer, resp.Body, err
}

// VerifyPeer reports whether TLS peer verification applies to apiURL.
func VerifyPeer(apiURL string) bool {
	return strings.HasPrefix(strings.ToLower(apiURL), "https")
}

// Interpret turns a raw answer body into an Answer, a *sellsy.RequestFailureError
// or a *sellsy.ServiceError.
func Interpret(body []byte) (*sellsy.Answer, error) {
	if bytes.Contains(body, []byte(constants.OAuthProblemMarker)) {
		return nil, &sellsy.RequestFailureError{Message: string(body)}
	}

	answer, err := sellsy.ParseAnswer(body)
	if err != nil {
		return nil, sellsy.NewRequestFailure(err)
	}

	if answer.Status != constants.StatusError {
		return answer, nil
	}

	return nil, newServiceError(answer)
}

func newServiceError(answer *sellsy.Answer) *sellsy.ServiceError {
	var detail struct {
		Message json.RawMessage `json:"message"`
		Code    json.RawMessage `json:"code"`
	}

	if len(answer.Error) > 0 && answer.Error[0] == '{' && json.Unmarshal(answer.Error, &detail) == nil {
		if message, ok := messageText(detail.Message); ok {
			return &sellsy.ServiceError{Message: message, Code: rawText(detail.Code)}
		}
	}

	if message, ok := jsonString(answer.Error); ok {
		return &sellsy.ServiceError{Message: message}
	}

	return &sellsy.ServiceError{Message: string(answer.Body())}
}

// messageText returns error.message as text. Empty values (null, false, zero,
// "", "0" and []) report false.
func messageText(raw json.RawMessage) (string, bool) {
	if message, ok := jsonString(raw); ok {
		return message, message != "" && message != "0"
	}

	var value any
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return "", false
	}

	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return "1", v
	case float64:
		return string(raw), v != 0
	case []any:
		return string(raw), len(v) > 0
	default:
		return string(raw), true
	}
}

func jsonString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	var value string
	if json.Unmarshal(raw, &value) != nil {
		return "", false
	}

	return value, true
}

func rawText(raw json.RawMessage) string {
	if value, ok := jsonString(raw); ok {
		return value
	}

	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	return string(raw)
}

// GetInfos implements sellsy.InvokerClient.GetInfos.
func (c *Client) GetInfos(ctx context.Context) (*sellsy.Answer, error) {
	return c.Call(ctx, constants.InfosMethod, nil)
}

// Collection implements sellsy.InvokerClient.Collection.
func (c *Client) Collection(resource sellsy.Resource) *sellsy.Collection {
	return c.collections[resource]
}

// APIURL implements sellsy.SettingsClient.APIURL.
func (c *Client) APIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.apiURL
}

// SetAPIURL implements sellsy.SettingsClient.SetAPIURL.
func (c *Client) SetAPIURL(apiURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiURL = apiURL
}

// Credentials implements sellsy.SettingsClient.Credentials.
func (c *Client) Credentials() sellsy.Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.credentials
}

// SetCredentials implements sellsy.SettingsClient.SetCredentials.
func (c *Client) SetCredentials(credentials sellsy.Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.credentials = credentials
}

// LastRequest implements sellsy.DebugClient.LastRequest.
func (c *Client) LastRequest() *sellsy.RequestSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.lastRequest == nil {
		return nil
	}

	settings := *c.lastRequest

	return &settings
}

// LastAnswer implements sellsy.DebugClient.LastAnswer.
func (c *Client) LastAnswer() *sellsy.Answer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastAnswer
}
