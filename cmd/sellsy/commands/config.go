package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	sellsyhttp "github.com/fivetwenty-io/sellsy-client/internal/http"
)

// Configuration keys, shared by the config file, viper and SELLSY_* variables.
const (
	keyAPIURL            = "api_url"
	keyConsumerKey       = "consumer_key"
	keyConsumerSecret    = "consumer_secret"
	keyAccessToken       = "access_token"
	keyAccessTokenSecret = "access_token_secret"
	keyOutput            = "output"
	keyHTTPTimeout       = "http_timeout"
	keyUserAgent         = "user_agent"
	keyAuditNATSURL      = "audit_nats_url"
	keyAuditSubject      = "audit_subject"
	keyVerbose           = "verbose"
	keyNoColor           = "no_color"
	keyMetricsFile       = "metrics_file"
)

const (
	configDirName  = ".sellsy"
	configFileName = "config.yml"
)

// Config represents the CLI configuration.
type Config struct {
	APIURL            string `json:"api_url"                       yaml:"api_url"`
	ConsumerKey       string `json:"consumer_key,omitempty"        yaml:"consumer_key,omitempty"`
	ConsumerSecret    string `json:"consumer_secret,omitempty"     yaml:"consumer_secret,omitempty"`
	AccessToken       string `json:"access_token,omitempty"        yaml:"access_token,omitempty"`
	AccessTokenSecret string `json:"access_token_secret,omitempty" yaml:"access_token_secret,omitempty"`

	Output      string `json:"output"                 yaml:"output"`
	HTTPTimeout string `json:"http_timeout,omitempty" yaml:"http_timeout,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"   yaml:"user_agent,omitempty"`

	AuditNATSURL string `json:"audit_nats_url,omitempty" yaml:"audit_nats_url,omitempty"`
	AuditSubject string `json:"audit_subject,omitempty"  yaml:"audit_subject,omitempty"`
}

// Masked returns a copy of the configuration safe to display.
func (c *Config) Masked() *Config {
	masked := *c
	masked.ConsumerSecret = maskSecret(c.ConsumerSecret)
	masked.AccessTokenSecret = maskSecret(c.AccessTokenSecret)

	return &masked
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}

func isSecretKey(key string) bool {
	return key == keyConsumerSecret || key == keyAccessTokenSecret
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Sellsy CLI configuration including endpoint, credentials and output settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			return render(cmd.OutOrStdout(), outputFormat(), config, func(w io.Writer) error {
				return renderPropertyTable(w, configRows(config))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Keys: api_url, consumer_key, consumer_secret,
access_token, access_token_secret, output, http_timeout, user_agent,
audit_nats_url, audit_subject.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			_, err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if isSecretKey(key) {
				value = maskSecret(value)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			err := unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			_, err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

func loadConfig() *Config {
	return &Config{
		APIURL:            viper.GetString(keyAPIURL),
		ConsumerKey:       viper.GetString(keyConsumerKey),
		ConsumerSecret:    viper.GetString(keyConsumerSecret),
		AccessToken:       viper.GetString(keyAccessToken),
		AccessTokenSecret: viper.GetString(keyAccessTokenSecret),
		Output:            viper.GetString(keyOutput),
		HTTPTimeout:       viper.GetString(keyHTTPTimeout),
		UserAgent:         viper.GetString(keyUserAgent),
		AuditNATSURL:      viper.GetString(keyAuditNATSURL),
		AuditSubject:      viper.GetString(keyAuditSubject),
	}
}

// configFilePath returns the file in use, or ~/.sellsy/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

// saveConfigStruct writes config as YAML and returns the file written.
func saveConfigStruct(config *Config) (string, error) {
	configFile, err := configFilePath()
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPIURL:
		_, err := sellsyhttp.ParseURI(value)
		if err != nil {
			return err
		}

		config.APIURL = value
	case keyConsumerKey:
		config.ConsumerKey = value
	case keyConsumerSecret:
		config.ConsumerSecret = value
	case keyAccessToken:
		config.AccessToken = value
	case keyAccessTokenSecret:
		config.AccessTokenSecret = value
	case keyOutput:
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		default:
			return fmt.Errorf("%w: %s (expected table, json or yaml)", constants.ErrInvalidOutputFormat, value)
		}

		config.Output = value
	case keyHTTPTimeout:
		_, err := parseHTTPTimeout(value)
		if err != nil {
			return err
		}

		config.HTTPTimeout = value
	case keyUserAgent:
		config.UserAgent = value
	case keyAuditNATSURL:
		config.AuditNATSURL = value
	case keyAuditSubject:
		config.AuditSubject = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case keyAPIURL:
		config.APIURL = ""
	case keyConsumerKey:
		config.ConsumerKey = ""
	case keyConsumerSecret:
		config.ConsumerSecret = ""
	case keyAccessToken:
		config.AccessToken = ""
	case keyAccessTokenSecret:
		config.AccessTokenSecret = ""
	case keyOutput:
		config.Output = ""
	case keyHTTPTimeout:
		config.HTTPTimeout = ""
	case keyUserAgent:
		config.UserAgent = ""
	case keyAuditNATSURL:
		config.AuditNATSURL = ""
	case keyAuditSubject:
		config.AuditSubject = ""
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// parseHTTPTimeout parses a positive duration such as "45s".
func parseHTTPTimeout(value string) (time.Duration, error) {
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", constants.ErrInvalidHTTPTimeout, err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("%w: %s", constants.ErrInvalidHTTPTimeout, value)
	}

	return timeout, nil
}

func configRows(config *Config) [][]string {
	return [][]string{
		{"API URL", orNotAvailable(config.APIURL)},
		{"Consumer Key", orNotAvailable(config.ConsumerKey)},
		{"Consumer Secret", orNotAvailable(config.ConsumerSecret)},
		{"Access Token", orNotAvailable(config.AccessToken)},
		{"Access Token Secret", orNotAvailable(config.AccessTokenSecret)},
		{"Output", orNotAvailable(config.Output)},
		{"HTTP Timeout", orNotAvailable(config.HTTPTimeout)},
		{"User Agent", orNotAvailable(config.UserAgent)},
		{"Audit NATS URL", orNotAvailable(config.AuditNATSURL)},
		{"Audit Subject", orNotAvailable(config.AuditSubject)},
	}
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func outputConfigUpdateResult(w io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return render(w, outputFormat(), result, func(w io.Writer) error {
		if value == "" {
			_, err := fmt.Fprintf(w, "%s %s\n", action, key)

			return err
		}

		_, err := fmt.Fprintf(w, "%s %s = %s\n", action, key, value)

		return err
	})
}
