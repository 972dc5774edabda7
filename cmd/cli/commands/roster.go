package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Show the volunteers the --as user can mark today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := app.Caller()
			if err != nil {
				return err
			}

			roster, err := services.TodayRoster(app.Ctx, app.Database, app.Logger, caller, app.Now())
			if err != nil {
				return userError(err)
			}
			if roster == nil {
				fmt.Printf("\n%s\n\n", services.MsgGroupNotFound)
				return nil
			}

			eligibility := colorGreen + "yes" + colorReset
			if !roster.Eligible {
				eligibility = colorRed + "no" + colorReset
			}

			fmt.Printf("\nRoster for %s (%s)\n", app.Now().Format("2006-01-02"), roster.Day)
			fmt.Printf("Groups:       %s\n", strings.Join(roster.GroupIDs, ", "))
			fmt.Printf("Can mark:     %s\n\n", eligibility)

			if len(roster.Entries) == 0 {
				fmt.Println("No volunteers to mark today.")
				fmt.Println()
				return nil
			}

			nameColWidth := nameColumnWidth(roster.Entries)
			statusColWidth := 14

			fmt.Printf("%-*s%-*s%s\n", nameColWidth, "Name", statusColWidth, "Today", "ID")
			fmt.Println(strings.Repeat("-", nameColWidth+statusColWidth+36))
			for _, e := range roster.Entries {
				fmt.Printf("%-*s%s%s\n", nameColWidth, e.Name, attendanceCell(e.AttendanceToday, statusColWidth), e.ID)
			}
			fmt.Println()

			return nil
		},
	}
}
