package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-shop/internal/models"
	"github.com/diewo77/go-shop/validation"
)

func newProductsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List or create catalog products",
	}
	cmd.AddCommand(newProductsListCmd(o), newProductsCreateCmd(o))
	return cmd
}

func newProductsListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := o.client().Products().List(cmd.Context(), o.resolveToken())
			if err != nil {
				return describe(err)
			}
			if o.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			if len(products) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aucun produit disponible")
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOM\tPRIX\tSTOCK\tSTATUT")
			for _, p := range products {
				status := "En stock"
				if !p.Available() {
					status = "Rupture"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Nom, p.PrixLabel(), p.StockLabel("fr"), status)
			}
			return tw.Flush()
		},
	}
}

func newProductsCreateCmd(o *options) *cobra.Command {
	var (
		in   models.ProductInput
		prix string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (administrators only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := make(validation.Violations)
			validation.Required("nom", in.Nom, v)
			p, err := decimal.NewFromString(prix)
			if err != nil {
				v.Add("prix", "invalid_number")
			} else {
				validation.DecimalFits("prix", p, 10, 2, v)
			}
			validation.PositiveDecimal("prix", p, v)
			validation.NonNegativeInt("quantite", in.Quantite, v)
			if field, code, bad := v.First("nom", "prix", "quantite"); bad {
				return fmt.Errorf("invalid --%s: %s", field, code)
			}
			in.Prix = p

			created, err := o.client().Products().Create(cmd.Context(), o.resolveToken(), in)
			if err != nil {
				return describe(err)
			}
			if o.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), created)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Produit #%d créé: %s (%s)\n", created.ID, created.Nom, created.PrixLabel())
			return err
		},
	}
	cmd.Flags().StringVar(&in.Nom, "nom", "", "Product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&prix, "prix", "", "Price, e.g. 49.90")
	cmd.Flags().IntVar(&in.Quantite, "quantite", 0, "Quantity in stock")
	return cmd
}
