package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbaumer/orderlink/app"
	"github.com/mbaumer/orderlink/core/orders"
)

var scheduleFilePath string

// scheduleFile is the on-disk request format for create-schedule. Horizon is
// given in minutes to keep the file free of Go duration syntax.
type scheduleFile struct {
	ScheduleID       string                               `json:"scheduleId"`
	ScheduledTimeUTC time.Time                            `json:"scheduledTimeUTC"`
	HorizonMinutes   float64                              `json:"horizonMinutes"`
	BookingIDs       []string                             `json:"bookingIds"`
	DownloadedParts  []orders.DownloadedPart              `json:"downloadedParts"`
	ScheduledParts   []orders.ScheduledPartWithoutBooking `json:"scheduledParts"`
}

var scheduleCmd = &cobra.Command{
	Use:   "create-schedule",
	Short: "Record a new schedule from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(scheduleFilePath)
		if err != nil {
			return fmt.Errorf("read schedule file: %w", err)
		}
		var sf scheduleFile
		if err := json.Unmarshal(raw, &sf); err != nil {
			return fmt.Errorf("parse schedule file: %w", err)
		}
		sched := orders.NewSchedule{
			ScheduleID:       sf.ScheduleID,
			ScheduledTimeUTC: sf.ScheduledTimeUTC,
			ScheduledHorizon: time.Duration(sf.HorizonMinutes * float64(time.Minute)),
			BookingIDs:       sf.BookingIDs,
			DownloadedParts:  sf.DownloadedParts,
			ScheduledParts:   sf.ScheduledParts,
		}
		return withService(func(svc *app.Service) error {
			_, err := svc.Handle(orders.CreateScheduleRequest{Schedule: sched})
			return err
		})
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleFilePath, "file", "f", "", "JSON file describing the schedule")
	scheduleCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(scheduleCmd)
}
