package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/wsaver/internal/restore"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// colorEnabled reports whether stdout is a terminal; plain text otherwise so
// piped output stays clean.
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// printRestoreSummary reports every record's outcome. It is printed at the
// end of every restore, regardless of overall success.
func printRestoreSummary(result *restore.Result, dryRun bool) {
	verb := "Restored"
	if dryRun {
		verb = "Would restore"
	}
	total := len(result.Applied) + len(result.Failed) + len(result.Unmatched)
	fmt.Printf("%s %d/%d windows (%d polls, %s)\n",
		verb, len(result.Applied), total, result.Polls, result.Elapsed.Round(10*time.Millisecond))

	for _, a := range result.Applied {
		fmt.Printf("  %s %s (%s) -> %d,%d %dx%d desktop %d\n",
			render(okStyle, "ok"),
			a.Record.WMClass, a.Record.Title,
			a.Geometry.X, a.Geometry.Y, a.Geometry.Width, a.Geometry.Height,
			a.Record.DesktopIndex)
	}
	for _, f := range result.Failed {
		fmt.Printf("  %s %s (%s) apply failed: %v\n",
			render(errStyle, "failed"),
			f.Record.WMClass, f.Record.Title, f.Err)
	}
	for _, u := range result.Unmatched {
		fmt.Printf("  %s %s (%s) never appeared\n",
			render(warnStyle, "unmatched"),
			u.WMClass, u.Title)
	}
}
