package profile

// Geometry is a rectangle in absolute screen coordinates.
type Geometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StateFlags records the EWMH visual state of a window at capture time.
type StateFlags struct {
	Maximized   bool `yaml:"maximized,omitempty"`
	Minimized   bool `yaml:"minimized,omitempty"`
	Fullscreen  bool `yaml:"fullscreen,omitempty"`
	Sticky      bool `yaml:"sticky,omitempty"`
	AlwaysOnTop bool `yaml:"alwaysOnTop,omitempty"`
}

// WindowRecord is one captured window. WMClass is the matching anchor and is
// never empty in a persisted profile; Title is advisory and may have changed
// by the time the window is seen again.
type WindowRecord struct {
	Title        string     `yaml:"title"`
	WMClass      string     `yaml:"wmClass"`
	WMInstance   string     `yaml:"wmInstance"`
	Geometry     Geometry   `yaml:"geometry"`
	MonitorIndex int        `yaml:"monitorIndex"`
	DesktopIndex int        `yaml:"desktopIndex"`
	StateFlags   StateFlags `yaml:"stateFlags"`
}

// MonitorLayout is the ordered sequence of monitor rectangles at capture
// time. The order matches the X server's CRTC enumeration order.
type MonitorLayout []Geometry

// Profile is a named, persisted snapshot of window records plus the monitor
// layout they were captured against. Window order is the capture enumeration
// order and is meaningful as a matching tie-break.
type Profile struct {
	Name    string         `yaml:"name"`
	Windows []WindowRecord `yaml:"windows"`
	Layout  MonitorLayout  `yaml:"monitorLayout"`
}

// LiveWindow is a WindowRecord-shaped view of a currently-open window plus
// its transient X11 handle. Handles are not stable across application
// restarts, so a LiveWindow is only valid for the enumeration pass that
// produced it and is never persisted.
type LiveWindow struct {
	Handle uint32
	Record WindowRecord
}
