// Package geometry converts window geometry between absolute screen
// coordinates and monitor-relative coordinates for a given monitor layout.
package geometry

import "github.com/1broseidon/wsaver/internal/profile"

// ToRelative returns the index of the monitor owning g's top-left corner and
// g translated into that monitor's coordinate space. A point belongs to the
// monitor whose rectangle contains it; when no monitor does (the layout has
// shrunk since capture), the nearest monitor is chosen instead.
func ToRelative(g profile.Geometry, layout profile.MonitorLayout) (int, profile.Geometry) {
	idx := MonitorIndexFor(g.X, g.Y, layout)
	if idx < 0 {
		return 0, g
	}
	mon := layout[idx]
	rel := g
	rel.X = g.X - mon.X
	rel.Y = g.Y - mon.Y
	return idx, rel
}

// ToAbsolute projects a monitor-relative geometry back onto the current
// layout. A saved monitor index that no longer exists falls back to monitor 0
// (the primary), and the result is clamped inside the chosen monitor so the
// window is never placed off all current screens.
func ToAbsolute(monitorIndex int, rel profile.Geometry, current profile.MonitorLayout) profile.Geometry {
	if len(current) == 0 {
		return rel
	}
	if monitorIndex < 0 || monitorIndex >= len(current) {
		monitorIndex = 0
	}
	mon := current[monitorIndex]

	abs := rel
	abs.X = mon.X + rel.X
	abs.Y = mon.Y + rel.Y
	return Clamp(abs, mon)
}

// MonitorIndexFor returns the index of the monitor containing point (x, y),
// or the nearest monitor when none contains it. Returns -1 only for an empty
// layout.
func MonitorIndexFor(x, y int, layout profile.MonitorLayout) int {
	best := -1
	bestDist := 0
	for i, mon := range layout {
		d := distanceToRect(x, y, mon)
		if d == 0 {
			return i
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Clamp shifts g inside mon, shrinking it when it is larger than the monitor,
// so that x+width and y+height stay within the monitor's bounds.
func Clamp(g profile.Geometry, mon profile.Geometry) profile.Geometry {
	if g.Width > mon.Width {
		g.Width = mon.Width
	}
	if g.Height > mon.Height {
		g.Height = mon.Height
	}
	if g.X < mon.X {
		g.X = mon.X
	}
	if g.Y < mon.Y {
		g.Y = mon.Y
	}
	if g.X+g.Width > mon.X+mon.Width {
		g.X = mon.X + mon.Width - g.Width
	}
	if g.Y+g.Height > mon.Y+mon.Height {
		g.Y = mon.Y + mon.Height - g.Height
	}
	return g
}

// distanceToRect is the squared distance from a point to the nearest edge of
// a rectangle; zero when the point is inside.
func distanceToRect(x, y int, r profile.Geometry) int {
	dx := 0
	if x < r.X {
		dx = r.X - x
	} else if x >= r.X+r.Width {
		dx = x - (r.X + r.Width - 1)
	}
	dy := 0
	if y < r.Y {
		dy = r.Y - y
	} else if y >= r.Y+r.Height {
		dy = y - (r.Y + r.Height - 1)
	}
	return dx*dx + dy*dy
}
