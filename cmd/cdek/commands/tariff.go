package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// NewTariffCommand creates the tariff command group.
func NewTariffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tariff",
		Short: "Calculate delivery cost",
		Long:  "Calculate delivery cost and time for a tariff",
	}

	cmd.AddCommand(newTariffCalcCommand())

	return cmd
}

type tariffFlags struct {
	tariffCode int
	fromCode   int
	toCode     int
	fromPostal string
	toPostal   string
	weight     int
	length     int
	width      int
	height     int
	date       string
	currency   int
	lang       string
}

func newTariffCalcCommand() *cobra.Command {
	var flags tariffFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a tariff",
		Long:  "Calculate the cost of sending one package between two locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.CalculateTariff(cmd.Context(), request)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&flags.tariffCode, "tariff", 0, "tariff code")
	cmd.Flags().IntVar(&flags.fromCode, "from-code", 0, "sender city code")
	cmd.Flags().IntVar(&flags.toCode, "to-code", 0, "recipient city code")
	cmd.Flags().StringVar(&flags.fromPostal, "from-postal-code", "", "sender postal code")
	cmd.Flags().StringVar(&flags.toPostal, "to-postal-code", "", "recipient postal code")
	cmd.Flags().IntVar(&flags.weight, "weight", 0, "package weight in grams")
	cmd.Flags().IntVar(&flags.length, "length", 0, "package length in cm")
	cmd.Flags().IntVar(&flags.width, "width", 0, "package width in cm")
	cmd.Flags().IntVar(&flags.height, "height", 0, "package height in cm")
	cmd.Flags().StringVar(&flags.date, "date", "", "planned shipment time (RFC 3339)")
	cmd.Flags().IntVar(&flags.currency, "currency", 0, "currency code")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "response language (rus, eng, zho)")

	return cmd
}

func (f *tariffFlags) request() (*cdek.TariffRequest, error) {
	if f.tariffCode == 0 {
		return nil, constants.ErrTariffCodeRequired
	}

	request := &cdek.TariffRequest{
		TariffCode:   f.tariffCode,
		FromLocation: locationFromFlags(f.fromCode, f.fromPostal),
		ToLocation:   locationFromFlags(f.toCode, f.toPostal),
		Packages: []cdek.Dimensions{{
			Weight: f.weight,
			Length: f.length,
			Width:  f.width,
			Height: f.height,
		}},
		Currency: f.currency,
		Lang:     f.lang,
	}

	if f.date != "" {
		date, err := time.Parse(time.RFC3339, f.date)
		if err != nil {
			return nil, fmt.Errorf("invalid --date: %w", err)
		}

		request.Date = &date
	}

	return request, nil
}

func locationFromFlags(code int, postalCode string) cdek.Address {
	address := cdek.Address{PostalCode: postalCode}
	if code != 0 {
		address.Code = &code
	}

	return address
}
