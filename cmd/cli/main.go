package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/cmd/cli/commands"
	"github.com/jakechorley/ilford-attendance/internal/config"
	"github.com/jakechorley/ilford-attendance/pkg/postgres"
	"github.com/jakechorley/ilford-attendance/pkg/utils/logging"
)

var app = &commands.AppContext{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Ilford Attendance CLI - Record daily volunteer attendance",
		Long:  `A CLI tool and HTTP server for building today's roster, marking attendance and managing volunteer roles.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&app.As, "as", "", "Email of the user to act on behalf of")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.MaterializeCmd(app))
	rootCmd.AddCommand(commands.SeedHistoryCmd(app))
	rootCmd.AddCommand(commands.FreeDayCmd(app))
	rootCmd.AddCommand(commands.MarkFreeDayCmd(app))
	rootCmd.AddCommand(commands.AssignRoleCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp(cmd *cobra.Command) error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(app.Env, logging.Options{JSONConsole: cmd.Name() == "serve"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("command", cmd.Name()))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(app.Env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("timezone", app.Cfg.Timezone),
		zap.Int("holiday_rules", len(app.Cfg.Holidays)))

	// Connect to database
	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Cfg.Location())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}
