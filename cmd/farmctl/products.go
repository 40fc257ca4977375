// cmd/farmctl/products.go
package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/javajoker/farmfresh/internal/dashboard"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/workflow"
)

func printProducts(cmd *cobra.Command, products []models.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
		return nil
	}

	w := table(cmd)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, workflow.FormatPrice(p.Price), p.Quantity)
	}
	return w.Flush()
}

func (a *app) productsCommand() *cobra.Command {
	var search string
	var categories []string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
		Long: "Browse the catalog. --search matches name or description, case-insensitively. " +
			"--category may be repeated; products in any selected category are shown.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dashboard.NewCustomerDashboard(a.client, a.logger)
			for _, name := range categories {
				c, err := parseCategory(name)
				if err != nil {
					return err
				}
				if !d.Filter().IsSelected(c) {
					d.ToggleCategory(c)
				}
			}
			d.Search(search)

			if err := d.Load(cmd.Context()); err != nil {
				return failure(d.State(), err)
			}
			return printProducts(cmd, d.Visible())
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "category filter ("+categoryList()+")")
	return cmd
}

func (a *app) myProductsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "my-products",
		Short: "List your own products (farmers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dashboard.NewFarmerDashboard(a.client, a.logger)
			if err := d.Load(cmd.Context()); err != nil {
				return failure(d.State(), err)
			}
			return printProducts(cmd, d.Products())
		},
	}
}

// productFlags binds the product form. Only flags the user set are applied,
// so edit-product keeps every other field of the existing listing.
type productFlags struct {
	name, description, category, price, image string
	quantity                                  int
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.category, "category", "", "category ("+categoryList()+")")
	cmd.Flags().StringVar(&f.price, "price", "", "price per unit, e.g. 40 or 12.50")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "units in stock")
	cmd.Flags().StringVar(&f.image, "image", "", "image URL")
}

func (f *productFlags) apply(cmd *cobra.Command, form *models.ProductRequest) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		form.Name = f.name
	}
	if flags.Changed("description") {
		form.Description = f.description
	}
	if flags.Changed("category") {
		c, err := parseCategory(f.category)
		if err != nil {
			return err
		}
		form.Category = c
	}
	if flags.Changed("price") {
		price, err := decimal.NewFromString(strings.TrimPrefix(f.price, "₹"))
		if err != nil {
			return fmt.Errorf("invalid price %q", f.price)
		}
		form.Price = price
	}
	if flags.Changed("quantity") {
		form.Quantity = f.quantity
	}
	if flags.Changed("image") {
		form.Image = f.image
	}
	return nil
}

func (a *app) addProductCommand() *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "add-product",
		Short: "List a new product (farmers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := models.ProductRequest{}
			if err := f.apply(cmd, &form); err != nil {
				return err
			}

			d := dashboard.NewFarmerDashboard(a.client, a.logger)
			if err := d.SaveProduct(cmd.Context(), "", form); err != nil {
				return failure(d.State(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.State().Message)
			return printProducts(cmd, d.Products())
		},
	}

	f.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (a *app) editProductCommand() *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "edit-product <product-id>",
		Short: "Change one of your products (farmers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dashboard.NewFarmerDashboard(a.client, a.logger)
			if err := d.Load(cmd.Context()); err != nil {
				return failure(d.State(), err)
			}

			var existing *models.Product
			for i := range d.Products() {
				if d.Products()[i].ID == args[0] {
					existing = &d.Products()[i]
					break
				}
			}
			if existing == nil {
				return fmt.Errorf("product %s is not one of your listings", args[0])
			}

			form := dashboard.FormFor(*existing)
			if err := f.apply(cmd, &form); err != nil {
				return err
			}
			if err := d.SaveProduct(cmd.Context(), existing.ID, form); err != nil {
				return failure(d.State(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.State().Message)
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}

func (a *app) deleteProductCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-product <product-id>",
		Short: "Remove one of your products (farmers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dashboard.NewFarmerDashboard(a.client, a.logger)
			if err := d.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return failure(d.State(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.State().Message)
			return nil
		},
	}
}
