package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
	"github.com/fivetwenty-io/cdek/pkg/cdekclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store CDEK credentials",
		Long: `Verify a client ID and secret against the token endpoint and store them in the
config file. The secret is prompted for when not given with --client-secret.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.ClientID == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Client ID (Account): ")

				clientID, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}

				config.ClientID = clientID
			}

			if config.ClientSecret == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Client secret (Secure password): ")

				secret, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout())

				config.ClientSecret = secret
			}

			if config.ClientSecret == "" {
				return constants.ErrEmptyClientSecret
			}

			env, err := cdek.ParseEnvironment(config.Environment)
			if err != nil {
				return err
			}

			config.Environment = string(env)

			client, err := cdekclient.New(cmd.Context(), &cdek.Config{
				ClientID:     config.ClientID,
				ClientSecret: config.ClientSecret,
				Environment:  env,
				BaseURL:      config.BaseURL,
				Debug:        viper.GetBool(KeyVerbose),
				Logger:       NewLogger(os.Stderr, viper.GetBool(KeyVerbose)),
			})
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			_, err = client.GetToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as %s (%s)\n", config.ClientID, config.Environment)

			return nil
		},
	}
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// readSecret reads without echo from a terminal and falls back to a plain line otherwise.
func readSecret(in io.Reader) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	return readLine(in)
}
