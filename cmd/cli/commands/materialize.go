package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// MaterializeCmd creates the materialize command
func MaterializeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize",
		Short: "Create today's ABSENT records for the group the --as user leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := app.Caller()
			if err != nil {
				return err
			}

			result, err := services.MaterializeToday(app.Ctx, app.Database, app.Logger, app.Cfg.HolidayRules(), caller.VolunteerID, app.Now())
			if err != nil {
				return userError(err)
			}

			if result.Holiday {
				fmt.Printf("\nToday is a holiday, no absences created for group %s\n\n", result.GroupID)
				return nil
			}

			fmt.Printf("\n✓ Created %d absence(s) for group %s\n\n", result.CreatedCount, result.GroupID)
			return nil
		},
	}
}
