// cmd/farmctl/orders.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajoker/farmfresh/internal/dashboard"
	"github.com/javajoker/farmfresh/internal/workflow"
)

func (a *app) orderCommand() *cobra.Command {
	var quantity int
	var delivery string

	cmd := &cobra.Command{
		Use:   "order <product-id>",
		Short: "Place an order (customers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deliveryType, err := parseDeliveryType(delivery)
			if err != nil {
				return err
			}

			d := dashboard.NewCustomerDashboard(a.client, a.logger)
			if err := d.Load(cmd.Context()); err != nil {
				return failure(d.State(), err)
			}

			order, err := d.PlaceOrder(cmd.Context(), args[0], quantity, deliveryType)
			if err != nil {
				return failure(d.State(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Order %s, total %s\n", d.State().Message, order.ID, workflow.FormatTotal(*order))
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity")
	cmd.Flags().StringVarP(&delivery, "delivery", "d", "Delivery", "Delivery or Pickup")
	return cmd
}

func (a *app) ordersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show your order history (customers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := dashboard.NewOrderHistory(a.client, a.logger)
			if err := h.Load(cmd.Context()); err != nil {
				return failure(h.State(), err)
			}

			rows := h.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "You have not placed any orders yet.")
				return nil
			}

			w := table(cmd)
			fmt.Fprintln(w, "ORDER\tPRODUCT\tQTY\tTOTAL\tDELIVERY\tSTATUS\tPLACED")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					r.OrderID, r.Product.DisplayName(), r.Quantity, r.Total,
					r.DeliveryType, r.Status, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func (a *app) farmerOrdersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "farmer-orders",
		Short: "Show incoming orders and their available actions (farmers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := dashboard.NewFarmerOrders(a.client, a.logger)
			if err := v.Load(cmd.Context()); err != nil {
				return failure(v.State(), err)
			}

			s := v.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "Total %d | Pending %d | Accepted %d | Rejected %d | Delivered %d\n\n",
				s.Total, s.Pending, s.Accepted, s.Rejected, s.Delivered)

			rows := v.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
				return nil
			}

			w := table(cmd)
			fmt.Fprintln(w, "ORDER\tPRODUCT\tQTY\tTOTAL\tCUSTOMER\tDELIVERY\tSTATUS\tACTIONS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					r.OrderID, r.Product.DisplayName(), r.Quantity, r.Total,
					r.CustomerName, r.DeliveryType, r.Status, actionList(r.Actions))
			}
			return w.Flush()
		},
	}
}

func actionList(actions []workflow.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// transitionCommands builds accept, reject and deliver.
func (a *app) transitionCommands() []*cobra.Command {
	specs := []struct {
		use    string
		action workflow.Action
	}{
		{"accept", workflow.ActionAccept},
		{"reject", workflow.ActionReject},
		{"deliver", workflow.ActionMarkDelivered},
	}

	cmds := make([]*cobra.Command, 0, len(specs))
	for _, spec := range specs {
		action := spec.action
		cmds = append(cmds, &cobra.Command{
			Use:   spec.use + " <order-id>",
			Short: action.Label() + " an incoming order (farmers)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v := dashboard.NewFarmerOrders(a.client, a.logger)
				if err := v.Load(cmd.Context()); err != nil {
					return failure(v.State(), err)
				}
				if err := v.Apply(cmd.Context(), args[0], action); err != nil {
					return failure(v.State(), err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.State().Message)
				return nil
			},
		})
	}
	return cmds
}
