// Command ledger_jobs runs the batch jobs the external scheduler triggers:
// subscription reminders, monthly reports and schema migrations.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/SscSPs/expense_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	logger *slog.Logger
	cfg    *config.Config
	atFlag string
)

var rootCmd = &cobra.Command{
	Use:          "ledger_jobs",
	Short:        "Batch jobs for the expense ledger",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("job", cmd.Name()))
		slog.SetDefault(logger)
		cmd.SetContext(middleware.WithLogger(cmd.Context(), logger))
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(remindersCmd, monthlyReportsCmd, migrateCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
