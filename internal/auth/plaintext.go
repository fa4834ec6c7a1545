package auth

import (
	"crypto/md5" //nolint:gosec // nonce uniqueness only, not a security boundary
	"encoding/hex"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// OAuth1 parameter names, in the order they are sent.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamToken           = "oauth_token"
	ParamNonce           = "oauth_nonce"
	ParamTimestamp       = "oauth_timestamp"
	ParamSignatureMethod = "oauth_signature_method"
	ParamVersion         = "oauth_version"
	ParamSignature       = "oauth_signature"
)

// RandomSource returns a uniformly distributed integer in [0, n).
type RandomSource func(n int) int

// Param is one OAuth1 protocol parameter.
type Param struct {
	Key   string
	Value string
}

// Signature holds the protocol parameters of one signed request.
type Signature struct {
	Params []Param
}

// Get returns the value of the named parameter.
func (s *Signature) Get(key string) string {
	for _, param := range s.Params {
		if param.Key == key {
			return param.Value
		}
	}

	return ""
}

// Authorization returns the Authorization header value:
// OAuth key1="enc(value1)", key2="enc(value2)", ...
func (s *Signature) Authorization() string {
	values := make([]string, 0, len(s.Params))
	for _, param := range s.Params {
		values = append(values, param.Key+`="`+oauth1.PercentEncode(param.Value)+`"`)
	}

	return "OAuth " + strings.Join(values, ", ")
}

// Header returns the headers to attach to the request: Authorization and an
// empty Expect, which keeps the transport from waiting for 100-continue.
func (s *Signature) Header() http.Header {
	header := make(http.Header)
	header.Set(constants.HeaderAuthorization, s.Authorization())
	header[constants.HeaderExpect] = []string{""}

	return header
}

// Lines returns the headers as raw header lines.
func (s *Signature) Lines() []string {
	return []string{
		constants.HeaderAuthorization + ": " + s.Authorization(),
		constants.HeaderExpect + ":",
	}
}

// Signer signs requests with the OAuth1 PLAINTEXT method.
type Signer struct {
	credentials sellsy.Credentials
	random      RandomSource
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithRandomSource replaces the random source used to derive nonces.
func WithRandomSource(random RandomSource) SignerOption {
	return func(s *Signer) {
		s.random = random
	}
}

// NewSigner creates a signer for credentials.
func NewSigner(credentials sellsy.Credentials, opts ...SignerOption) *Signer {
	signer := &Signer{
		credentials: credentials,
		random:      rand.IntN,
	}

	for _, opt := range opts {
		opt(signer)
	}

	return signer
}

// Sign computes the protocol parameters for a request made at now.
func (s *Signer) Sign(now time.Time) *Signature {
	timestamp := now.Unix()
	token := s.credentials.Token()

	return &Signature{
		Params: []Param{
			{Key: ParamConsumerKey, Value: s.credentials.ConsumerKey},
			{Key: ParamToken, Value: token.Token},
			{Key: ParamNonce, Value: Nonce(timestamp, s.random(constants.NonceRandomMax+1))},
			{Key: ParamTimestamp, Value: strconv.FormatInt(timestamp, 10)},
			{Key: ParamSignatureMethod, Value: constants.SignatureMethodPlaintext},
			{Key: ParamVersion, Value: constants.OAuthVersion},
			{Key: ParamSignature, Value: PlaintextSignature(s.credentials.ConsumerSecret, token.TokenSecret)},
		},
	}
}

// PlaintextSignature returns enc(consumerSecret) + "&" + enc(tokenSecret).
func PlaintextSignature(consumerSecret, tokenSecret string) string {
	return oauth1.PercentEncode(consumerSecret) + "&" + oauth1.PercentEncode(tokenSecret)
}

// Nonce returns the hex MD5 digest of the decimal sum timestamp + random.
func Nonce(timestamp int64, random int) string {
	sum := md5.Sum([]byte(strconv.FormatInt(timestamp+int64(random), 10))) //nolint:gosec

	return hex.EncodeToString(sum[:])
}
