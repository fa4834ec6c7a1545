package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsyclient"
)

const natsClientName = "sellsy-cli"

// withClient runs fn with a client built from the current configuration and
// releases the client resources afterwards.
func withClient(cmd *cobra.Command, fn func(client sellsy.Client) error) error {
	client, closeClient, err := createClient(cmd, loadConfig())
	if err != nil {
		return err
	}

	return errors.Join(fn(client), closeClient())
}

// createClient builds a client from config. The returned func flushes the
// audit connection and writes the metrics file when one is configured.
func createClient(cmd *cobra.Command, config *Config) (sellsy.Client, func() error, error) {
	err := requireCredentials(config)
	if err != nil {
		return nil, nil, err
	}

	verbose := viper.GetBool(keyVerbose)
	logger := newLogger(cmd.ErrOrStderr(), verbose, viper.GetBool(keyNoColor))

	clientConfig := &sellsy.Config{
		APIURL: config.APIURL,
		Credentials: sellsy.NewCredentials(
			config.ConsumerKey, config.ConsumerSecret, config.AccessToken, config.AccessTokenSecret,
		),
		UserAgent: config.UserAgent,
		Debug:     verbose,
	}

	if verbose {
		clientConfig.Logger = logger
	}

	if config.HTTPTimeout != "" {
		clientConfig.HTTPTimeout, err = parseHTTPTimeout(config.HTTPTimeout)
		if err != nil {
			return nil, nil, err
		}
	}

	var closers []func() error

	closeAll := func() error {
		var errs []error
		for _, closer := range closers {
			errs = append(errs, closer())
		}

		return errors.Join(errs...)
	}

	if config.AuditNATSURL != "" {
		closeAudit, err := addAuditObserver(clientConfig, config, logger)
		if err != nil {
			return nil, nil, err
		}

		closers = append(closers, closeAudit)
	}

	if metricsFile := viper.GetString(keyMetricsFile); metricsFile != "" {
		writeMetrics, err := addMetricsObserver(clientConfig, metricsFile)
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}

		closers = append(closers, writeMetrics)
	}

	client, err := sellsyclient.New(clientConfig)
	if err != nil {
		return nil, nil, errors.Join(err, closeAll())
	}

	return client, closeAll, nil
}

func requireCredentials(config *Config) error {
	credentials := []struct {
		key   string
		value string
	}{
		{keyConsumerKey, config.ConsumerKey},
		{keyConsumerSecret, config.ConsumerSecret},
		{keyAccessToken, config.AccessToken},
		{keyAccessTokenSecret, config.AccessTokenSecret},
	}

	for _, credential := range credentials {
		if credential.value == "" {
			return fmt.Errorf("%w: %s (run 'sellsy login' or set SELLSY_%s)",
				constants.ErrMissingCredential, credential.key, strings.ToUpper(credential.key))
		}
	}

	return nil
}

// addAuditObserver publishes an audit record per call on the configured NATS
// server.
func addAuditObserver(clientConfig *sellsy.Config, config *Config, logger sellsy.Logger) (func() error, error) {
	conn, err := nats.Connect(config.AuditNATSURL, nats.Name(natsClientName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit server: %w", err)
	}

	observer, err := sellsy.NewAuditObserver(conn, config.AuditSubject, logger)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to create audit observer: %w", err)
	}

	clientConfig.ResponseObservers = append(clientConfig.ResponseObservers, observer)

	return func() error {
		defer conn.Close()

		err := conn.Flush()
		if err != nil {
			return fmt.Errorf("failed to flush audit records: %w", err)
		}

		return nil
	}, nil
}

// addMetricsObserver records call metrics in a private registry written to
// path in the node_exporter textfile format.
func addMetricsObserver(clientConfig *sellsy.Config, path string) (func() error, error) {
	registry := prometheus.NewRegistry()

	observer, err := sellsy.NewMetricsObserver(registry)
	if err != nil {
		return nil, err
	}

	clientConfig.ResponseObservers = append(clientConfig.ResponseObservers, observer)

	return func() error {
		err := prometheus.WriteToTextfile(path, registry)
		if err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}

		return nil
	}, nil
}
