package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/wsaver/internal/profile"
)

// ListWindows returns a fresh snapshot of all normal top-level windows across
// every virtual desktop, with class, instance, title, root-relative geometry,
// desktop index, and EWMH state flags. Windows without a WM_CLASS are skipped
// since they can never be matched again. A failed client-list query aborts
// the whole enumeration; no partial result is returned as success.
func (c *Connection) ListWindows() ([]profile.LiveWindow, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	windows := make([]profile.LiveWindow, 0, len(clients))
	for _, windowID := range clients {
		if !c.IsNormalWindow(windowID) {
			continue
		}

		class, instance := c.windowClass(windowID)
		if class == "" {
			continue
		}

		geom, ok := c.windowGeometry(windowID)
		if !ok {
			continue
		}

		desktop := 0
		sticky := false
		if d, err := ewmh.WmDesktopGet(c.XUtil, windowID); err == nil {
			// 0xFFFFFFFF means the window is on all desktops.
			if d == 0xFFFFFFFF {
				sticky = true
				desktop = -1
			} else {
				desktop = int(d)
			}
		}

		flags := c.windowStateFlags(windowID)
		flags.Sticky = flags.Sticky || sticky

		windows = append(windows, profile.LiveWindow{
			Handle: uint32(windowID),
			Record: profile.WindowRecord{
				Title:        c.windowTitle(windowID),
				WMClass:      class,
				WMInstance:   instance,
				Geometry:     geom,
				DesktopIndex: desktop,
				StateFlags:   flags,
			},
		})
	}

	return windows, nil
}

// IsNormalWindow checks if a window is a normal application window rather
// than a desktop, dock, splash, or notification surface.
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// A maximized window is unmaximized first so the WM honors the request.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, g profile.Geometry) error {
	if err := c.unmaximizeWindow(windowID); err != nil {
		// Some windows do not support state changes; the move may still work.
	}

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, g.X, g.Y, g.Width, g.Height)
	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(g.X, g.Y, g.Width, g.Height)
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window.
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, windowID, stateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Connection) windowStateFlags(windowID xproto.Window) profile.StateFlags {
	var flags profile.StateFlags
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return flags
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			flags.Maximized = true
		case "_NET_WM_STATE_HIDDEN":
			flags.Minimized = true
		case "_NET_WM_STATE_FULLSCREEN":
			flags.Fullscreen = true
		case "_NET_WM_STATE_STICKY":
			flags.Sticky = true
		case "_NET_WM_STATE_ABOVE":
			flags.AlwaysOnTop = true
		}
	}
	return flags
}

func (c *Connection) windowGeometry(windowID xproto.Window) (profile.Geometry, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return profile.Geometry{}, false
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return profile.Geometry{}, false
	}

	return profile.Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

func (c *Connection) windowClass(windowID xproto.Window) (class, instance string) {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return "", ""
	}
	return strings.TrimSpace(wmClass.Class), strings.TrimSpace(wmClass.Instance)
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
