package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/wsaver/internal/profile"
)

// _NET_WM_STATE actions per EWMH.
const (
	stateRemove = 0
	stateAdd    = 1
)

// Apply restores desktop assignment, geometry, and state flags on a live
// window. Order matters: the desktop move and geometry happen while the
// window is in plain state, then maximize/fullscreen/sticky/above are
// reapplied, and minimize goes last so the WM does not refuse the other
// requests on an iconified window.
func (c *Connection) Apply(handle uint32, desktop int, geom profile.Geometry, flags profile.StateFlags) error {
	windowID := xproto.Window(handle)

	if desktop >= 0 && !flags.Sticky {
		if err := c.SetWindowDesktop(handle, desktop); err != nil {
			return fmt.Errorf("failed to set desktop for window %d: %w", handle, err)
		}
	}

	if err := c.MoveResizeWindow(windowID, geom); err != nil {
		return fmt.Errorf("failed to move window %d: %w", handle, err)
	}

	if err := c.applyStates(windowID, flags); err != nil {
		return fmt.Errorf("failed to set state for window %d: %w", handle, err)
	}

	if flags.Minimized {
		if err := c.MinimizeWindow(handle); err != nil {
			return fmt.Errorf("failed to minimize window %d: %w", handle, err)
		}
	}

	return nil
}

func (c *Connection) applyStates(windowID xproto.Window, flags profile.StateFlags) error {
	if flags.Maximized {
		if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
			return err
		}
		if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, "_NET_WM_STATE_MAXIMIZED_VERT"); err != nil {
			return err
		}
	}
	if flags.Fullscreen {
		if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, "_NET_WM_STATE_FULLSCREEN"); err != nil {
			return err
		}
	}
	if flags.Sticky {
		if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, "_NET_WM_STATE_STICKY"); err != nil {
			return err
		}
	}
	if flags.AlwaysOnTop {
		if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, "_NET_WM_STATE_ABOVE"); err != nil {
			return err
		}
	}
	return nil
}
