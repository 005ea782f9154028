package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_ledger/internal/platform/app"
	"github.com/SscSPs/expense_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Emit reminders for every subscription whose reminder date has been reached",
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := jobTime()
		if err != nil {
			return err
		}
		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close(logger)

		sent, err := application.Services.Subscription.ProcessSubscriptionReminders(cmd.Context(), now)
		if err != nil {
			logger.Error("Subscription reminder job failed", slog.String("error", err.Error()), slog.Int("reminders_sent", sent))
			return err
		}
		logger.Info("Subscription reminder job finished", slog.Int("reminders_sent", sent))
		return nil
	},
}

var monthlyReportsCmd = &cobra.Command{
	Use:   "monthly-reports",
	Short: "Generate the previous calendar month's report for every organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := jobTime()
		if err != nil {
			return err
		}
		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close(logger)

		generated, err := application.Services.Report.GenerateMonthlyReports(cmd.Context(), now)
		if err != nil {
			logger.Error("Monthly report job failed", slog.String("error", err.Error()), slog.Int("reports_generated", generated))
			return err
		}
		logger.Info("Monthly report job finished", slog.Int("reports_generated", generated))
		return nil
	},
}

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply (or with --down, roll back) the database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.MigrateUp
		if migrateDown {
			direction = database.MigrateDown
		}
		return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
	},
}

func init() {
	for _, c := range []*cobra.Command{remindersCmd, monthlyReportsCmd} {
		c.Flags().StringVar(&atFlag, "at", "", "evaluate the job at this RFC3339 time instead of now")
	}
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back every migration")
}

func jobTime() (time.Time, error) {
	if atFlag == "" {
		return time.Now().UTC(), nil
	}
	at, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: %w", atFlag, err)
	}
	return at, nil
}
