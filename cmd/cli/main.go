package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/internal/api"
	"github.com/altamoda/agencyboard/internal/config"
	"github.com/altamoda/agencyboard/pkg/auth"
	"github.com/altamoda/agencyboard/pkg/clients/gmailclient"
	"github.com/altamoda/agencyboard/pkg/clients/slackclient"
	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/services"
	"github.com/altamoda/agencyboard/pkg/db"
	"github.com/altamoda/agencyboard/pkg/jsonstore"
	"github.com/altamoda/agencyboard/pkg/postgres"
	"github.com/altamoda/agencyboard/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	store  db.Store
	email  services.EmailSender
	slack  services.SlackSender
	pg     *postgres.DB // Set only when the postgres driver is active
	logger *zap.Logger
	ctx    context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agencyboard",
		Short: "Agency Board CLI - Manage model profiles, calendars, and alerts",
		Long:  `A CLI tool for running the agency board server and managing model profiles, calendar bookings, conflict checks, and alert rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.pg != nil {
					app.pg.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkConflictsCmd())
	rootCmd.AddCommand(evaluateAlertsCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(exportCalendarCmd())
	rootCmd.AddCommand(listModelsCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, storage, and delivery clients
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Initializing storage", zap.String("driver", app.cfg.Storage.Driver))
	switch app.cfg.Storage.Driver {
	case "postgres":
		app.pg, err = postgres.NewDB(app.ctx, app.cfg.Storage.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := app.pg.RunMigrations(app.ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.store = app.pg
	default:
		app.store, err = jsonstore.NewStore(app.cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open data directory: %w", err)
		}
	}
	app.logger.Debug("Storage initialized successfully")

	app.slack = slackclient.NewClient()

	if app.cfg.GmailEnabled {
		app.logger.Info("Initializing gmail client")
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		gmail, err := gmailclient.NewClient(app.ctx, oauthCfg, app.cfg.GmailSender, env)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.email = gmail
		app.logger.Debug("Gmail client initialized successfully")
	}

	return nil
}

// Command definitions

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server for the public board and admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(app.cfg, app.store, app.email, app.slack, app.logger)
			return server.Run()
		},
	}
}

func checkConflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkConflicts <model_id> <start_date>",
		Short: "Check a candidate booking range against a model's calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			endDate, _ := cmd.Flags().GetString("end-date")
			startTime, _ := cmd.Flags().GetString("start-time")
			endTime, _ := cmd.Flags().GetString("end-time")
			excludeID, _ := cmd.Flags().GetString("exclude-event")

			conflicts, err := services.CheckConflicts(app.ctx, app.store, app.logger, services.CheckConflictsInput{
				ModelID:        args[0],
				StartDate:      args[1],
				EndDate:        endDate,
				StartTime:      startTime,
				EndTime:        endTime,
				ExcludeEventID: excludeID,
			})
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Println("\nNo conflicts found.")
				return nil
			}

			fmt.Printf("\nFound %d conflicting events:\n\n", len(conflicts))
			for _, ev := range conflicts {
				window := ev.StartDate
				if end := ev.EffectiveEndDate(); end != ev.StartDate {
					window = fmt.Sprintf("%s to %s", ev.StartDate, end)
				}
				if ev.StartTime != "" && ev.EndTime != "" {
					window = fmt.Sprintf("%s %s-%s", window, ev.StartTime, ev.EndTime)
				}
				fmt.Printf("  - [%s] %s (%s) %s\n", ev.EventType, ev.Title, ev.ID, window)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("end-date", "", "End date (defaults to start date)")
	cmd.Flags().String("start-time", "", "Start time HH:MM (requires --end-time)")
	cmd.Flags().String("end-time", "", "End time HH:MM (requires --start-time)")
	cmd.Flags().String("exclude-event", "", "Event ID to exclude from the check")

	return cmd
}

func evaluateAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluateAlerts",
		Short: "Evaluate alert rules against the upcoming calendar window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatch, _ := cmd.Flags().GetBool("dispatch")
			return runEvaluation(dispatch)
		},
	}

	cmd.Flags().Bool("dispatch", false, "Record and deliver the triggered alerts")

	return cmd
}

func runEvaluation(dispatch bool) error {
	evaluation, err := services.EvaluateAlerts(app.ctx, app.store, app.logger, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("\n%d alert(s) triggered.\n", evaluation.TriggeredCount)
	for _, pair := range evaluation.Pairs {
		fmt.Printf("  - rule %q fired for event %s (%s on %s)\n",
			pair.Rule.Name, pair.Event.ID, pair.Event.EventType, pair.Event.StartDate)
	}

	if !dispatch || evaluation.TriggeredCount == 0 {
		return nil
	}

	result, err := services.DispatchAlerts(app.ctx, app.store, app.email, app.slack, app.logger, evaluation.Pairs)
	if err != nil {
		return err
	}

	fmt.Printf("\nRecorded %d notification(s), sent %d message(s)", result.Recorded, result.Sent)
	if len(result.Failures) > 0 {
		fmt.Printf(", %d delivery failure(s)", len(result.Failures))
	}
	fmt.Println()

	return nil
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run alert evaluation on the configured schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule := app.cfg.AlertSchedule
			if schedule == "" {
				schedule = "@hourly"
			}

			runner := cron.New()
			_, err := runner.AddFunc(schedule, func() {
				if err := runEvaluation(true); err != nil {
					app.logger.Error("Scheduled evaluation failed", zap.Error(err))
				}
			})
			if err != nil {
				return fmt.Errorf("failed to schedule evaluation: %w", err)
			}

			app.logger.Info("Watching for alerts", zap.String("schedule", schedule))
			runner.Run()
			return nil
		},
	}
}

func exportCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportCalendar <model_id>",
		Short: "Export a model's calendar as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			serialized, err := services.ExportCalendar(app.ctx, app.store, app.logger, args[0])
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Print(serialized)
				return nil
			}

			if err := os.WriteFile(out, []byte(serialized), 0o644); err != nil {
				return fmt.Errorf("failed to write calendar file: %w", err)
			}
			fmt.Printf("\nCalendar written to %s\n", out)

			return nil
		},
	}

	cmd.Flags().String("out", "", "Write the calendar to a file instead of stdout")

	return cmd
}

func listModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listModels",
		Short: "List all model profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.store.GetProfiles(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			fmt.Printf("\nFound %d models:\n\n", len(profiles))
			for _, p := range profiles {
				fmt.Printf("- %s (%s) - %s - %s\n", p.FullName(), p.ID, p.Division, p.Status)
			}

			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createAdmin <username>",
		Short: "Create an admin account (prompts for password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			admin := &model.Admin{
				ID:           uuid.New().String(),
				Username:     args[0],
				PasswordHash: hash,
				Role:         "admin",
				CreatedAt:    time.Now(),
			}
			if err := app.store.InsertAdmin(app.ctx, admin); err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Printf("Admin %q created (%s)\n", admin.Username, admin.ID)
			return nil
		},
	}
}
