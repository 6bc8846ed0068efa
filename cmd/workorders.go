package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mbaumer/orderlink/app"
	"github.com/mbaumer/orderlink/core/orders"
)

var (
	workordersLookahead int
	workordersPart      string
)

var workordersCmd = &cobra.Command{
	Use:   "workorders",
	Short: "Print unfilled workorders as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			res, err := svc.Handle(orders.LoadWorkorders{
				LookaheadDays: workordersLookahead,
				Part:          workordersPart,
			})
			if err != nil {
				return err
			}
			return printJSON(res)
		})
	},
}

func init() {
	workordersCmd.Flags().IntVar(&workordersLookahead, "lookahead", -1, "only include workorders due within this many days (<=0 disables)")
	workordersCmd.Flags().StringVar(&workordersPart, "part", "", "only include workorders demanding this part")
	rootCmd.AddCommand(workordersCmd)
}
