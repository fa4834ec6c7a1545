package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sellsy-client/cmd/sellsy/commands"
	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sellsy",
	Short: "Sellsy API CLI",
	Long: `A command-line interface for the Sellsy RPC API.

Calls are signed with OAuth1 PLAINTEXT using the credentials stored by
"sellsy login" or the SELLSY_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.sellsy/config.yml)")
	rootCmd.PersistentFlags().StringP("api-url", "a", "", "API endpoint URL (default "+constants.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().String("audit-nats-url", "", "NATS server receiving one audit record per call")
	rootCmd.PersistentFlags().String("audit-subject", constants.DefaultAuditSubject, "NATS subject of audit records")
	rootCmd.PersistentFlags().String("metrics-file", "", "write call metrics to this file in Prometheus text format")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("audit_nats_url", rootCmd.PersistentFlags().Lookup("audit-nats-url"))
	_ = viper.BindPFlag("audit_subject", rootCmd.PersistentFlags().Lookup("audit-subject"))
	_ = viper.BindPFlag("metrics_file", rootCmd.PersistentFlags().Lookup("metrics-file"))

	viper.SetDefault("api_url", constants.DefaultAPIURL)

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewInfosCommand())
	rootCmd.AddCommand(commands.NewResourcesCommand())
	rootCmd.AddCommand(commands.NewCallCommand())
	rootCmd.AddCommand(commands.NewCollectionCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.sellsy/config.yml
		viper.AddConfigPath(filepath.Join(home, ".sellsy"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// SELLSY_API_URL, SELLSY_CONSUMER_KEY, ...
	viper.SetEnvPrefix("SELLSY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
