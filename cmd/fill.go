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

var fillFilePath string

// fillFile is the on-disk request format for fill. Operation times are given
// per station in minutes.
type fillFile struct {
	WorkorderID string     `json:"workorderId"`
	FilledUTC   time.Time  `json:"filledUtc"`
	Serials     []string   `json:"serials"`
	Parts       []fillPart `json:"parts"`
}

type fillPart struct {
	Part           string             `json:"part"`
	PartsCompleted int                `json:"partsCompleted"`
	ActiveMinutes  map[string]float64 `json:"activeMinutes"`
	ElapsedMinutes map[string]float64 `json:"elapsedMinutes"`
}

func minutesToDurations(m map[string]float64) map[string]time.Duration {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]time.Duration, len(m))
	for station, mins := range m {
		out[station] = time.Duration(mins * float64(time.Minute))
	}
	return out
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Record the fill result for a workorder from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(fillFilePath)
		if err != nil {
			return fmt.Errorf("read fill file: %w", err)
		}
		var ff fillFile
		if err := json.Unmarshal(raw, &ff); err != nil {
			return fmt.Errorf("parse fill file: %w", err)
		}
		res := orders.WorkorderResources{Serials: ff.Serials}
		for _, p := range ff.Parts {
			res.Parts = append(res.Parts, orders.WorkorderPartResources{
				Part:                 p.Part,
				PartsCompleted:       p.PartsCompleted,
				ActiveOperationTime:  minutesToDurations(p.ActiveMinutes),
				ElapsedOperationTime: minutesToDurations(p.ElapsedMinutes),
			})
		}
		return withService(func(svc *app.Service) error {
			_, err := svc.Handle(orders.FillWorkorder{
				WorkorderID: ff.WorkorderID,
				FilledUTC:   ff.FilledUTC,
				Resources:   res,
			})
			return err
		})
	},
}

func init() {
	fillCmd.Flags().StringVarP(&fillFilePath, "file", "f", "", "JSON file describing the fill result")
	fillCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(fillCmd)
}
