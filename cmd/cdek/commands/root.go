package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the cdek command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cdek",
		Short: "CDEK delivery API v2 CLI",
		Long: `A command-line interface for the CDEK delivery API v2.

Calculate tariffs, manage orders and pre-alerts, and look up cities using
client credentials from flags, CDEK_* environment variables or ~/.cdek/config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitConfig()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.cdek/config.yml)")
	flags.String("client-id", "", "OAuth2 client ID (CDEK account)")
	flags.String("client-secret", "", "OAuth2 client secret (CDEK secure password)")
	flags.StringP("env", "e", "", "environment: test or production")
	flags.String("base-url", "", "override the API base URL")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP traffic to stderr")
	flags.String("token-cache", "", "token cache: none, memory, nats or redis")
	flags.String("nats-url", "", "NATS server URL for the nats token cache")
	flags.String("redis-addr", "", "Redis address for the redis token cache")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"config":        "config",
		KeyClientID:     "client-id",
		KeyClientSecret: "client-secret",
		KeyEnvironment:  "env",
		KeyBaseURL:      "base-url",
		KeyOutput:       "output",
		KeyVerbose:      "verbose",
		KeyTokenCache:   "token-cache",
		KeyNATSURL:      "nats-url",
		KeyRedisAddr:    "redis-addr",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewTokenCommand())
	rootCmd.AddCommand(NewTariffCommand())
	rootCmd.AddCommand(NewOrdersCommand())
	rootCmd.AddCommand(NewCitiesCommand())
	rootCmd.AddCommand(NewPreAlertCommand())

	return rootCmd
}

// InitConfig points viper at the config file and the CDEK_* environment.
func InitConfig() error {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		// Search config in ~/.cdek/config.yml
		viper.AddConfigPath(filepath.Join(home, ".cdek"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CDEK")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil {
		if viper.GetBool(KeyVerbose) {
			_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}

		return nil
	}

	var parseErr viper.ConfigParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}
