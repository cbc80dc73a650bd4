package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wsaver/internal/x11"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List currently open windows and their attributes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := x11.NewConnection()
		if err != nil {
			return err
		}
		defer conn.Close()

		windows, err := conn.ListWindows()
		if err != nil {
			return err
		}
		for _, w := range windows {
			r := w.Record
			fmt.Printf("%s %s.%s %d,%d %dx%d desktop %d %s\n",
				render(dimStyle, fmt.Sprintf("0x%08x", w.Handle)),
				r.WMInstance, r.WMClass,
				r.Geometry.X, r.Geometry.Y, r.Geometry.Width, r.Geometry.Height,
				r.DesktopIndex, r.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
