package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mbaumer/orderlink/app"
	"github.com/mbaumer/orderlink/core/orders"
)

var statusLookahead int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the merged unscheduled status as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			res, err := svc.Handle(orders.LoadUnscheduled{LookaheadDays: statusLookahead})
			if err != nil {
				return err
			}
			return printJSON(res)
		})
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusLookahead, "lookahead", -1, "only include bookings due within this many days (<=0 disables)")
	rootCmd.AddCommand(statusCmd)
}
