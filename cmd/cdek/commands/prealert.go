package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// NewPreAlertCommand creates the prealert command group.
func NewPreAlertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prealert",
		Aliases: []string{"prealerts"},
		Short:   "Manage pre-alerts",
		Long:    "Announce orders that will be handed over at a shipment point",
	}

	cmd.AddCommand(newPreAlertCreateCommand())
	cmd.AddCommand(newPreAlertGetCommand())

	return cmd
}

type preAlertFlags struct {
	plannedDate   string
	shipmentPoint string
	orderUUIDs    []string
	cdekNumbers   []int64
	imNumbers     []string
}

func newPreAlertCreateCommand() *cobra.Command {
	var flags preAlertFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pre-alert",
		Long:  "Create a pre-alert listing the orders planned for hand-over",
		RunE: func(cmd *cobra.Command, args []string) error {
			preAlert, err := flags.preAlert()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.CreatePreAlert(cmd.Context(), preAlert)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&flags.plannedDate, "planned-date", "", "hand-over time (RFC 3339, default now)")
	cmd.Flags().StringVar(&flags.shipmentPoint, "shipment-point", "", "shipment point code")
	cmd.Flags().StringSliceVar(&flags.orderUUIDs, "order-uuid", nil, "order UUID (repeatable)")
	cmd.Flags().Int64SliceVar(&flags.cdekNumbers, "cdek-number", nil, "CDEK order number (repeatable)")
	cmd.Flags().StringSliceVar(&flags.imNumbers, "im-number", nil, "store order number (repeatable)")

	return cmd
}

func (f *preAlertFlags) preAlert() (*cdek.PreAlert, error) {
	if f.shipmentPoint == "" {
		return nil, constants.ErrShipmentPointRequired
	}

	if len(f.orderUUIDs)+len(f.cdekNumbers)+len(f.imNumbers) == 0 {
		return nil, constants.ErrOrderRefRequired
	}

	plannedDate := time.Now()

	if f.plannedDate != "" {
		parsed, err := time.Parse(time.RFC3339, f.plannedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", constants.ErrPlannedDateInvalid, err)
		}

		plannedDate = parsed
	}

	preAlert := cdek.NewPreAlert(plannedDate, f.shipmentPoint)

	for _, orderUUID := range f.orderUUIDs {
		preAlert.AddOrder(cdek.OrderRef{OrderUUID: orderUUID})
	}

	for _, number := range f.cdekNumbers {
		preAlert.AddOrder(cdek.OrderRef{CDEKNumber: number})
	}

	for _, number := range f.imNumbers {
		preAlert.AddOrder(cdek.OrderRef{IMNumber: number})
	}

	return preAlert, nil
}

func newPreAlertGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PREALERT_UUID",
		Short: "Get pre-alert details",
		Long:  "Display a pre-alert and the processing state of its orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.GetPreAlert(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
}
