package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// NewCitiesCommand creates the cities command group.
func NewCitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cities",
		Aliases: []string{"city"},
		Short:   "Look up cities",
		Long:    "Query the CDEK city directory",
	}

	cmd.AddCommand(newCitiesListCommand())

	return cmd
}

func newCitiesListCommand() *cobra.Command {
	var (
		filter     cdek.CityFilter
		regionCode int
		code       int
		page       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cities",
		Long:  "List cities matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("region-code") {
				filter.RegionCode = &regionCode
			}

			if cmd.Flags().Changed("code") {
				filter.Code = &code
			}

			if cmd.Flags().Changed("page") {
				filter.Page = &page
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient(client, cmd.ErrOrStderr())

			resp, err := client.ListCities(cmd.Context(), &filter)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringSliceVar(&filter.CountryCodes, "country", nil, "ISO country codes (repeatable)")
	cmd.Flags().IntVar(&regionCode, "region-code", 0, "CDEK region code")
	cmd.Flags().StringVar(&filter.FiasGUID, "fias-guid", "", "FIAS identifier")
	cmd.Flags().StringVar(&filter.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().IntVar(&code, "code", 0, "CDEK city code")
	cmd.Flags().StringVar(&filter.City, "city", "", "city name")
	cmd.Flags().IntVar(&filter.Size, "size", 0, "page size")
	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")
	cmd.Flags().StringVar(&filter.Lang, "lang", "", "response language (rus, eng, zho)")

	return cmd
}
