package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wsaver/internal/restore"
	"github.com/1broseidon/wsaver/internal/x11"
)

var (
	restoreDryRun  bool
	restoreTimeout time.Duration
)

var restoreCmd = &cobra.Command{
	Use:   "restore <profile-name>",
	Short: "Match live windows to a saved profile and reapply their layout",
	Long: "restore polls the window list until every saved record is matched or the\n" +
		"timeout elapses. Windows that appear late (slow-starting applications) are\n" +
		"picked up on a later poll; records that never match are reported and the\n" +
		"command exits nonzero.",
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "Match windows but move nothing; report what would change")
	restoreCmd.Flags().DurationVar(&restoreTimeout, "timeout", 0, "Override the configured restore timeout")
}

func runRestore(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	p, err := store.Load(name)
	if err != nil {
		return err
	}

	conn, err := x11.NewConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	timeout := cfg.Timeout
	if restoreTimeout > 0 {
		timeout = restoreTimeout
	}

	// Ctrl-C aborts between polls; geometry already applied stays applied.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := restore.NewScheduler(conn, conn, restore.Options{
		Interval: cfg.PollInterval,
		Timeout:  timeout,
		Weights:  cfg.Weights,
		DryRun:   restoreDryRun,
		Logger:   logger,
	})

	result, runErr := scheduler.Run(ctx, p)
	if result != nil {
		printRestoreSummary(result, restoreDryRun)
	}
	if runErr != nil {
		return runErr
	}

	if result.State == restore.StateTimedOut {
		return &exitError{
			code: exitTimedOut,
			msg:  fmt.Sprintf("restore of %q timed out with %d unmatched windows", name, len(result.Unmatched)),
		}
	}
	return nil
}
