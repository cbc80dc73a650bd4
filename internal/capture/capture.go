// Package capture turns the current window population into a persistable
// profile.
package capture

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/wsaver/internal/geometry"
	"github.com/1broseidon/wsaver/internal/profile"
)

// Client is the windowing capability a capture needs: a fresh window
// snapshot and the current monitor layout.
type Client interface {
	ListWindows() ([]profile.LiveWindow, error)
	Monitors() (profile.MonitorLayout, error)
}

// Snapshot enumerates all current normal windows and builds a named profile.
// Geometry stays absolute; each record's monitor index is derived from the
// captured layout. Record order is enumeration order, which later serves as
// the matching tie-break.
func Snapshot(name string, c Client, logger *slog.Logger) (*profile.Profile, error) {
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	layout, err := c.Monitors()
	if err != nil {
		return nil, fmt.Errorf("failed to capture monitor layout: %w", err)
	}

	windows, err := c.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	p := &profile.Profile{
		Name:   name,
		Layout: layout,
	}
	for _, w := range windows {
		rec := w.Record
		if rec.WMClass == "" {
			continue
		}
		rec.MonitorIndex, _ = geometry.ToRelative(rec.Geometry, layout)
		p.Windows = append(p.Windows, rec)
		logger.Debug("captured window",
			"class", rec.WMClass,
			"instance", rec.WMInstance,
			"title", rec.Title,
			"monitor", rec.MonitorIndex,
			"desktop", rec.DesktopIndex)
	}

	logger.Info("captured profile", "name", name, "windows", len(p.Windows), "monitors", len(layout))
	return p, nil
}
