package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Manage orders",
		Long:    "Create, inspect and delete CDEK delivery orders",
	}

	cmd.AddCommand(newOrdersCreateCommand())
	cmd.AddCommand(newOrdersGetCommand())
	cmd.AddCommand(newOrdersDeleteCommand())

	return cmd
}

func newOrdersCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Long: `Create an order described by a YAML or JSON file. Order and package numbers
left empty are generated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return constants.ErrOrderFileRequired
			}

			orderFile, err := readOrderFile(file)
			if err != nil {
				return err
			}

			request, err := orderFile.DeliveryRequest()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.CreateOrder(cmd.Context(), request)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "order file (YAML or JSON)")

	return cmd
}

func newOrdersGetCommand() *cobra.Command {
	var selector cdek.OrderSelector

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get order details",
		Long:  "Look an order up by UUID, CDEK number or store number, in that order of precedence",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.GetOrder(cmd.Context(), selector)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&selector.UUID, "uuid", "", "order UUID")
	cmd.Flags().Int64Var(&selector.CDEKNumber, "cdek-number", 0, "CDEK order number")
	cmd.Flags().StringVar(&selector.IMNumber, "im-number", "", "store order number")

	return cmd
}

func newOrdersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ORDER_UUID",
		Short: "Delete an order",
		Long:  "Delete an order that has not been handed over to CDEK yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.DeleteOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
}
