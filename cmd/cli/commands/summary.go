package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

var summaryOrder = []db.AttendanceStatus{
	db.AttendancePresent,
	db.AttendanceLate,
	db.AttendanceJustified,
	db.AttendanceAbsent,
}

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <volunteer_id>",
		Short: "Count a volunteer's attendance by status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.AttendanceSummary(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return userError(err)
			}

			fmt.Printf("\n%s (%s)\n\n", result.Volunteer.Name, result.Volunteer.ID)
			for _, status := range summaryOrder {
				label, _ := calendar.StatusLabel(status)
				fmt.Printf("  %s%-12s%s %4d\n", statusColor(status), label, colorReset, result.Counts[status])
			}
			fmt.Printf("  %-12s %4d\n\n", "total", result.Total)

			return nil
		},
	}
}
