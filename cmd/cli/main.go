package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/internal/config"
	"github.com/larsmoen/dcproster/pkg/core/services"
	"github.com/larsmoen/dcproster/pkg/postgres"
	"github.com/larsmoen/dcproster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dcproster",
		Short: "Doping control roster CLI - assign control personnel to testing missions",
		Long:  `A CLI tool for selecting and allocating doping control personnel to testing missions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to dcproster_config.yaml)")

	rootCmd.AddCommand(runAssignmentCmd())
	rootCmd.AddCommand(listMissionsCmd())
	rootCmd.AddCommand(showStatusCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger and database
func initApp(ctx context.Context) error {
	var err error
	app = &App{ctx: ctx}

	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger, err = logging.InitLogger(app.cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logger.Debug("Configuration loaded")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("Database connection established")

	return nil
}

func runAssignmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runAssignment",
		Short: "Run the assignment engine over all missions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RunAssignment(app.ctx, app.database, app.cfg, app.logger)
			if err != nil {
				return fmt.Errorf("assignment run failed: %w", err)
			}

			fmt.Printf("\nAssignment run completed: %d missions processed\n\n", len(result.Missions))
			for _, mr := range result.Missions {
				fmt.Printf("%s (%s)\n", mr.Name, mr.MissionID)
				for _, sr := range mr.Sessions {
					slot := sr.Slot
					if slot == "" {
						slot = "all-day"
					}
					if sr.Locked {
						fmt.Printf("  %s %-10s %-10s locked\n", sr.Date, slot, sr.Role)
						continue
					}
					fmt.Printf("  %s %-10s %-10s %d/%d\n", sr.Date, slot, sr.Role, sr.Assigned, sr.Required)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func listMissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listMissions",
		Short: "List all missions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			missions, err := services.ListMissions(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d missions:\n\n", len(missions))
			for _, m := range missions {
				flags := ""
				if m.HighRisk {
					flags += " [high-risk]"
				}
				if m.AssignmentFixed {
					flags += " [fixed]"
				}
				fmt.Printf("- %s (%s) %s %s..%s %s%s\n",
					m.Name, m.ID, m.TestingType, m.StartDate, m.EndDate, m.Discipline, flags)
			}
			return nil
		},
	}
}

func showStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "showStatus [mission_id]",
		Short: "Show required vs assigned headcounts (optionally for one mission)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var missionID string
			if len(args) > 0 {
				missionID = args[0]
			}

			statuses, err := services.ShowStatus(app.ctx, app.database, missionID, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%-12s %-12s %-10s %-10s %s\n", "Mission", "Date", "Slot", "Role", "Assigned")
			for _, s := range statuses {
				marker := ""
				if s.Assigned < s.Required {
					marker = "  <- under-filled"
				}
				fmt.Printf("%-12s %-12s %-10s %-10s %d/%d%s\n",
					s.MissionID, s.Date, s.TimeSlot, s.Role, s.Assigned, s.Required, marker)
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			app.logger.Info("Migrations applied")
			fmt.Println("Database schema is up to date.")
			return nil
		},
	}
}
