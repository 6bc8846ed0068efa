package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbaumer/orderlink/app"
	"github.com/mbaumer/orderlink/core/orders"
)

var backoutID int64

var backoutCmd = &cobra.Command{
	Use:   "backout part:quantity ...",
	Short: "Re-enter backed out quantities as new demand",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := make([]orders.BackedOutPart, 0, len(args))
		for _, arg := range args {
			part, qtyStr, ok := strings.Cut(arg, ":")
			if !ok || part == "" {
				return fmt.Errorf("argument %q is not part:quantity", arg)
			}
			qty, err := strconv.Atoi(qtyStr)
			if err != nil {
				return fmt.Errorf("argument %q: %w", arg, err)
			}
			parts = append(parts, orders.BackedOutPart{Part: part, Quantity: qty})
		}
		return withService(func(svc *app.Service) error {
			_, err := svc.Handle(orders.BackoutWork{BackoutID: backoutID, Parts: parts})
			return err
		})
	},
}

func init() {
	backoutCmd.Flags().Int64Var(&backoutID, "id", 0, "identifier of this backout batch")
	backoutCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(backoutCmd)
}
