package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/internal/config"
	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/core/services"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
	"github.com/oakfieldclinic/staff-scheduler/pkg/postgres"
	"github.com/oakfieldclinic/staff-scheduler/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	store  db.Store
	pg     *postgres.DB
	logger *zap.Logger
	ctx    context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "staff-scheduler",
		Short: "Clinic staffing scheduler - assign support staff to providers",
		Long:  `A CLI tool for materializing provider schedules from recurring patterns and assigning support staff to open role slots.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.pg != nil {
					app.pg.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to staff_scheduler_config.yaml lookup)")

	rootCmd.AddCommand(materializeScheduleCmd())
	rootCmd.AddCommand(viewDayCmd())
	rootCmd.AddCommand(autoAssignCmd())
	rootCmd.AddCommand(addProviderToDayCmd())
	rootCmd.AddCommand(removeProviderFromDayCmd())
	rootCmd.AddCommand(assignStaffCmd())
	rootCmd.AddCommand(removeStaffCmd())
	rootCmd.AddCommand(listProvidersCmd())
	rootCmd.AddCommand(listStaffCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the backing store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("logs", "scheduler")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application")

	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	if app.cfg.DatabaseURL == "" {
		app.logger.Warn("No databaseURL configured - using in-memory store, data will not persist")
		app.store = db.NewMemoryStore()
		return nil
	}

	app.logger.Info("Connecting to database")
	app.pg, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.logger.Info("Running migrations")
	if err := app.pg.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.store = app.pg
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func materializeScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materializeSchedule <start_date>",
		Short: "Expand recurring provider patterns into per-day schedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			days, _ := cmd.Flags().GetInt("days")
			if days == 0 {
				days = app.cfg.HorizonDays
			}

			result, err := services.MaterializeSchedule(app.ctx, app.store, app.cfg, app.logger, start, days)
			if err != nil {
				return err
			}

			fmt.Printf("\nMaterialized %d day(s) starting %s\n\n", len(result.Dates), args[0])
			fmt.Printf("Created: %d\n", len(result.CreatedDates))
			if len(result.SkippedDates) > 0 {
				fmt.Printf("Skipped (already stored): %s\n", strings.Join(result.SkippedDates, ", "))
			}
			if len(result.ClosedDates) > 0 {
				fmt.Printf("Closed (clinic closures): %s\n", strings.Join(result.ClosedDates, ", "))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("days", 0, "Number of days to materialize (default: horizonDays from config)")

	return cmd
}

func viewDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewDay <date>",
		Short: "Show the schedule and staffing coverage for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]

			summary, err := services.DayStaffingSummary(app.ctx, app.store, app.logger, date)
			if err != nil {
				return err
			}

			staff, err := app.store.GetStaff(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch staff: %w", err)
			}
			staffNames := make(map[string]string, len(staff))
			for _, s := range staff {
				staffNames[s.ID] = s.Name
			}

			fmt.Printf("\nSchedule for %s\n\n", date)
			if len(summary.Providers) == 0 {
				fmt.Println("No providers scheduled.")
				return nil
			}

			for _, ps := range summary.Providers {
				fmt.Printf("%s @ %s (%s-%s)\n", ps.ProviderName, ps.Location, ps.TimeSlot.StartTime, ps.TimeSlot.EndTime)
				for _, rc := range ps.Roles {
					if rc.Required == 0 && rc.Assigned == 0 {
						continue
					}
					fmt.Printf("  %-12s %d/%d\n", rc.Role, rc.Assigned, rc.Required)
				}
				for _, a := range ps.AssignedStaff {
					name := staffNames[a.StaffID]
					if name == "" {
						name = a.StaffID
					}
					fmt.Printf("    - %s (%s)\n", name, a.AssignedRole)
				}
				fmt.Println()
			}

			fmt.Printf("Total staffing: %d/%d\n\n", summary.TotalAssigned, summary.TotalRequired)
			return nil
		},
	}
}

func autoAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autoAssign <date> <provider_id>",
		Short: "Automatically fill a provider's open role slots for a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.AutoAssignProvider(app.ctx, app.store, app.logger, args[0], args[1])
			if err != nil {
				return err
			}

			total := 0
			for _, assignments := range result.Assignments {
				total += len(assignments)
			}
			fmt.Printf("\nAssigned %d staff to provider %s on %s", total, result.ProviderID, result.Date)
			if result.Unfilled > 0 {
				fmt.Printf(" (%d slot(s) unfilled)", result.Unfilled)
			}
			fmt.Println()

			for _, assignments := range result.Assignments {
				for _, a := range assignments {
					fmt.Printf("  - %s -> %s\n", a.StaffID, a.AssignedRole)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func addProviderToDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addProviderToDay <date> <provider_id> <location>",
		Short: "Place a provider on a date at a location",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultSlot := model.TimeSlot{
				StartTime: app.cfg.DefaultTimeSlot.StartTime,
				EndTime:   app.cfg.DefaultTimeSlot.EndTime,
			}
			if err := services.AddProviderToDay(app.ctx, app.store, app.logger, args[0], args[1], args[2], defaultSlot); err != nil {
				return err
			}
			fmt.Printf("Provider %s added to %s at %s\n", args[1], args[0], args[2])
			return nil
		},
	}
}

func removeProviderFromDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "removeProviderFromDay <date> <provider_id>",
		Short: "Remove a provider (and its assignments) from a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveProviderFromDay(app.ctx, app.store, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Provider %s removed from %s\n", args[1], args[0])
			return nil
		},
	}
}

func assignStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assignStaff <date> <provider_id> <staff_id> <role>",
		Short: "Assign a staff member to a role under a provider",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := model.Role(args[3])
			if err := services.AssignStaffToProvider(app.ctx, app.store, app.logger, args[0], args[1], args[2], role); err != nil {
				return err
			}
			fmt.Printf("Staff %s assigned as %s\n", args[2], role)
			return nil
		},
	}
}

func removeStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "removeStaff <date> <provider_id> <staff_id>",
		Short: "Remove a staff assignment from a provider on a date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveStaffFromProvider(app.ctx, app.store, app.logger, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Staff %s removed\n", args[2])
			return nil
		},
	}
}

func listProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listProviders",
		Short: "List all providers and their recurring schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := app.store.GetProviders(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list providers: %w", err)
			}

			fmt.Printf("\nFound %d providers:\n\n", len(providers))
			for _, p := range providers {
				fmt.Printf("- %s (%s), needs %d staff\n", p.Name, p.ID, p.Requirements.Total())
				for _, entry := range p.RecurringSchedule {
					fmt.Printf("    %s @ %s %s-%s (%s)\n",
						entry.WeekDay, entry.Location,
						entry.TimeSlot.StartTime, entry.TimeSlot.EndTime,
						entry.Frequency)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func listStaffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List all staff members and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.store.GetStaff(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list staff: %w", err)
			}

			fmt.Printf("\nFound %d staff members:\n\n", len(members))
			for _, s := range members {
				roles := make([]string, len(s.Roles))
				for i, r := range s.Roles {
					roles[i] = string(r)
				}
				line := fmt.Sprintf("- %s (%s) - %s", s.Name, s.ID, strings.Join(roles, ", "))
				if s.PreferredLocation != "" {
					line += fmt.Sprintf(" [prefers %s]", s.PreferredLocation)
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo providers and staff into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.SeedDemoData(app.ctx, app.store, app.logger, app.cfg.Locations)
			if err != nil {
				return err
			}
			fmt.Printf("\nSeeded %d providers and %d staff members.\n\n",
				len(result.ProviderIDs), len(result.StaffIDs))
			return nil
		},
	}
}
