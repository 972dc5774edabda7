package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// AssignRoleCmd creates the assignRole command
func AssignRoleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignRole <volunteer_id> <role> [group_id]",
		Short: "Change a volunteer's role (VOLUNTEER, MANAGER, ADMIN); MANAGER needs a group",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := app.Caller()
			if err != nil {
				return err
			}

			req := services.RoleUpdate{
				VolunteerID: args[0],
				Role:        db.Role(args[1]),
			}
			if len(args) > 2 {
				req.GroupID = args[2]
			}

			change, err := services.UpdateVolunteerRole(app.Ctx, app.Database, app.Logger, caller, req)
			if err != nil {
				return userError(err)
			}

			fmt.Printf("\n✓ Role updated\n\n")
			fmt.Printf("User:      %s\n", change.UserID)
			fmt.Printf("Volunteer: %s\n", change.VolunteerID)
			fmt.Printf("Role:      %s\n", change.Role)
			if change.GroupID != "" {
				fmt.Printf("Leads:     %s\n", change.GroupID)
			}
			fmt.Println()

			return nil
		},
	}
}
