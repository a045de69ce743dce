package cli

import (
	"fmt"

	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/spf13/cobra"
)

func newProductsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}

			products, err := rt.client.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products yet.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tACTIVE")
			for _, p := range products {
				price := dash
				if p.Price != nil {
					price = fmt.Sprintf("₹%.2f", *p.Price)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n",
					p.ID, p.Name, orDash(utils.Value(p.Category)), price, p.IsActive)
			}
			return tw.Flush()
		},
	}
}
