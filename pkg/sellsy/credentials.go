package sellsy

import (
	"fmt"

	"github.com/dghubble/oauth1"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

// Credentials holds the OAuth1 consumer and access token pairs issued by
// Sellsy. It is a value type: modifying helpers return a copy.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// NewCredentials creates credentials from the two OAuth1 pairs.
func NewCredentials(consumerKey, consumerSecret, accessToken, accessTokenSecret string) Credentials {
	return Credentials{
		ConsumerKey:       consumerKey,
		ConsumerSecret:    consumerSecret,
		AccessToken:       accessToken,
		AccessTokenSecret: accessTokenSecret,
	}
}

// WithConsumer returns a copy with the consumer pair replaced.
func (c Credentials) WithConsumer(key, secret string) Credentials {
	c.ConsumerKey = key
	c.ConsumerSecret = secret

	return c
}

// WithAccessToken returns a copy with the access token pair replaced.
func (c Credentials) WithAccessToken(token, secret string) Credentials {
	c.AccessToken = token
	c.AccessTokenSecret = secret

	return c
}

// Token returns the access token pair.
func (c Credentials) Token() *oauth1.Token {
	return oauth1.NewToken(c.AccessToken, c.AccessTokenSecret)
}

// IsZero reports whether no credential is set.
func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

// String masks both secrets.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{ConsumerKey: %q, ConsumerSecret: %s, AccessToken: %q, AccessTokenSecret: %s}",
		c.ConsumerKey, mask(c.ConsumerSecret), c.AccessToken, mask(c.AccessTokenSecret))
}

// GoString masks both secrets for %#v.
func (c Credentials) GoString() string {
	return "sellsy." + c.String()
}

func mask(secret string) string {
	if secret == "" {
		return `""`
	}

	return constants.MaskedSecret
}
