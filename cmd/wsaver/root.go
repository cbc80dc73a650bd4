package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wsaver/internal/config"
	"github.com/1broseidon/wsaver/internal/profile"
)

var (
	verbose bool
	logger  *slog.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wsaver",
	Short: "Save and restore window layouts on X11",
	Long: "wsaver captures the geometry, desktop, and state of open windows into a\n" +
		"named profile and restores that layout later, matching relaunched windows\n" +
		"by WM class, instance, and title.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// openStore resolves the profile directory and returns a store over it.
func openStore() (*profile.Store, error) {
	dir, err := profile.DefaultDir()
	if err != nil {
		return nil, err
	}
	return profile.NewStore(dir), nil
}
