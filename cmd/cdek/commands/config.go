package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// Viper keys shared by flags, the config file and CDEK_* environment variables.
const (
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
	KeyEnvironment  = "environment"
	KeyBaseURL      = "base_url"
	KeyOutput       = "output"
	KeyVerbose      = "verbose"
	KeyTokenCache   = "token_cache"
	KeyNATSURL      = "nats_url"
	KeyRedisAddr    = "redis_addr"
)

// Config represents the CLI configuration.
type Config struct {
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Environment  string `json:"environment,omitempty"   yaml:"environment,omitempty"`
	BaseURL      string `json:"base_url,omitempty"      yaml:"base_url,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
	TokenCache   string `json:"token_cache,omitempty"   yaml:"token_cache,omitempty"`
	NATSURL      string `json:"nats_url,omitempty"      yaml:"nats_url,omitempty"`
	RedisAddr    string `json:"redis_addr,omitempty"    yaml:"redis_addr,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the CDEK CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the client secret masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().masked()

			switch viper.GetString(KeyOutput) {
			case constants.FormatJSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(config)
			default:
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Property", "Value")
				_ = table.Append("Client ID", orNotAvailable(config.ClientID))
				_ = table.Append("Client Secret", orNotAvailable(config.ClientSecret))
				_ = table.Append("Environment", orNotAvailable(config.Environment))
				_ = table.Append("Base URL", orNotAvailable(config.BaseURL))
				_ = table.Append("Output", orNotAvailable(config.Output))
				_ = table.Append("Token Cache", orNotAvailable(config.TokenCache))

				err := table.Render()
				if err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Supported keys: client_id, environment, base_url,
output, token_cache, nats_url, redis_addr. Use 'cdek login' to store the client secret.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := config.set(args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func (c *Config) set(key, value string) error {
	switch key {
	case KeyClientID:
		c.ClientID = value
	case KeyEnvironment:
		c.Environment = value
	case KeyBaseURL:
		c.BaseURL = value
	case KeyOutput:
		switch value {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, value)
		}

		c.Output = value
	case KeyTokenCache:
		c.TokenCache = value
	case KeyNATSURL:
		c.NATSURL = value
	case KeyRedisAddr:
		c.RedisAddr = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func (c *Config) masked() *Config {
	masked := *c
	if masked.ClientSecret != "" {
		masked.ClientSecret = constants.MaskedSecret
	}

	return &masked
}

func loadConfig() *Config {
	return &Config{
		ClientID:     viper.GetString(KeyClientID),
		ClientSecret: viper.GetString(KeyClientSecret),
		Environment:  viper.GetString(KeyEnvironment),
		BaseURL:      viper.GetString(KeyBaseURL),
		Output:       viper.GetString(KeyOutput),
		TokenCache:   viper.GetString(KeyTokenCache),
		NATSURL:      viper.GetString(KeyNATSURL),
		RedisAddr:    viper.GetString(KeyRedisAddr),
	}
}

// ConfigFilePath returns the config file in use, or ~/.cdek/config.yml.
func ConfigFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".cdek", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := ConfigFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
