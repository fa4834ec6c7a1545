// Package sellsyclient provides the main entry point for creating Sellsy API clients
package sellsyclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/sellsy-client/internal/client"
	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// New creates a new Sellsy API client. An empty APIURL selects the public
// endpoint. The config is copied; later changes to it do not affect the client.
func New(config *sellsy.Config) (sellsy.Client, error) {
	if config == nil {
		return nil, sellsy.ErrConfigRequired
	}

	normalized := *config

	normalized.APIURL = strings.TrimSpace(normalized.APIURL)
	if normalized.APIURL == "" {
		normalized.APIURL = constants.DefaultAPIURL
	}

	if normalized.HTTPTimeout < 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidHTTPTimeout, normalized.HTTPTimeout)
	}

	client, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewFromEnv creates a client configured from SELLSY_* environment variables.
func NewFromEnv() (sellsy.Client, error) {
	config, err := sellsy.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(config)
}

// NewWithCredentials creates a client for apiURL signing calls with the two
// OAuth1 pairs.
func NewWithCredentials(apiURL, consumerKey, consumerSecret, accessToken, accessTokenSecret string) (sellsy.Client, error) {
	return New(&sellsy.Config{
		APIURL:      apiURL,
		Credentials: sellsy.NewCredentials(consumerKey, consumerSecret, accessToken, accessTokenSecret),
	})
}
