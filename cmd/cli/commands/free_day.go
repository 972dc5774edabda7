package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// FreeDayCmd creates the freeDay command
func FreeDayCmd(app *AppContext) *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "freeDay [on|off]",
		Short: "List volunteers eligible for free-day marking, or toggle the fallback",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				enabled, err := onOff(args[0])
				if err != nil {
					return err
				}
				caller, err := app.Caller()
				if err != nil {
					return err
				}
				if err := services.SetFreeDayEnabled(app.Ctx, app.Database, app.Logger, caller, enabled); err != nil {
					return userError(err)
				}
				if enabled {
					fmt.Printf("\n✓ Free-day marking enabled\n\n")
				} else {
					fmt.Printf("\n✓ Free-day marking disabled\n\n")
				}
				return nil
			}

			enabled, err := services.FreeDayEnabled(app.Ctx, app.Database)
			if err != nil {
				return err
			}
			if !enabled {
				fmt.Printf("\nFree-day marking is disabled (run 'freeDay on' to enable)\n\n")
				return nil
			}

			volunteers, err := services.VolunteersEligibleForFreeDay(app.Ctx, app.Database, app.Logger, exclude, app.Now())
			if err != nil {
				return userError(err)
			}

			fmt.Printf("\nFound %d volunteers without attendance today:\n\n", len(volunteers))
			for _, v := range volunteers {
				fmt.Printf("- %s (%s) - %s\n", v.Name, v.ID, v.Email)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Volunteer IDs to leave out (e.g. today's roster)")

	return cmd
}

// MarkFreeDayCmd creates the markFreeDay command
func MarkFreeDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "markFreeDay <volunteer_id> <status> [date]",
		Short: "Mark a volunteer outside the group flow (PRESENT, ABSENT, JUSTIFIED, LATE)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.As == "" {
				return fmt.Errorf("this command requires --as <email>")
			}

			date := app.Now()
			if len(args) > 2 {
				d, err := time.ParseInLocation("2006-01-02", args[2], app.Cfg.Location())
				if err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD, got: %s", args[2])
				}
				date = d
			}

			attendance, err := services.MarkAttendanceOfVolunteerByEmail(app.Ctx, app.Database, app.Logger, app.Cfg.Location(), app.Cfg.FreeDayNote, services.MarkRequest{
				ActorEmail:  app.As,
				VolunteerID: args[0],
				Status:      db.AttendanceStatus(args[1]),
				Date:        date,
			})
			if err != nil {
				return userError(err)
			}

			fmt.Printf("\n✓ Attendance recorded\n\n")
			fmt.Printf("ID:        %s\n", attendance.ID)
			fmt.Printf("Volunteer: %s\n", attendance.VolunteerID)
			fmt.Printf("Date:      %s\n", attendance.Date.Format("2006-01-02"))
			fmt.Printf("Status:    %s%s%s\n\n", statusColor(attendance.Status), attendance.Status, colorReset)

			return nil
		},
	}
}
