package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wsaver/internal/capture"
	"github.com/1broseidon/wsaver/internal/x11"
)

var savePrint bool

var saveCmd = &cobra.Command{
	Use:   "save <profile-name>",
	Short: "Capture all current windows into a named profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().BoolVar(&savePrint, "print", false, "Write the profile to stdout instead of saving it")
}

func runSave(cmd *cobra.Command, args []string) error {
	name := args[0]

	conn, err := x11.NewConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	p, err := capture.Snapshot(name, conn, logger)
	if err != nil {
		return err
	}

	if savePrint {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return enc.Close()
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		return err
	}
	fmt.Printf("Saved profile %q (%d windows, %d monitors)\n", name, len(p.Windows), len(p.Layout))
	return nil
}
