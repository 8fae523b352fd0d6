package commands

import (
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token",
		Long:  "Perform a client-credentials exchange and print the resulting bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			token, err := client.GetToken(cmd.Context())
			if err != nil {
				return err
			}

			return printValue(cmd.OutOrStdout(), map[string]interface{}{
				"access_token": token,
				"token_type":   "Bearer",
			})
		},
	}
}
