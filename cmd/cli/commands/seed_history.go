package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// SeedHistoryCmd creates the seedHistory command
func SeedHistoryCmd(app *AppContext) *cobra.Command {
	var present, late, absent int

	cmd := &cobra.Command{
		Use:   "seedHistory <volunteer_id> <start_date>",
		Short: "Backfill a volunteer's attendance history from start_date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := app.Caller()
			if err != nil {
				return err
			}

			result, err := services.SeedInitialHistory(app.Ctx, app.Database, app.Logger, caller, app.Cfg.Location(), app.Cfg.SeedSource, services.SeedRequest{
				VolunteerID: args[0],
				Present:     present,
				Late:        late,
				Absent:      absent,
				StartDate:   args[1],
			})
			if err != nil {
				return userError(err)
			}

			fmt.Printf("\n✓ Created %d attendance record(s)\n\n", len(result.Attendances))
			for i, a := range result.Attendances {
				fmt.Printf("  %3d. %s  %s%s%s\n", i+1, a.Date.Format("2006-01-02 (Monday)"), statusColor(a.Status), a.Status, colorReset)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVar(&present, "present", 0, "Number of PRESENT days")
	cmd.Flags().IntVar(&late, "late", 0, "Number of LATE days")
	cmd.Flags().IntVar(&absent, "absent", 0, "Number of ABSENT days")

	return cmd
}
