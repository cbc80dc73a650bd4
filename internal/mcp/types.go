package mcp

// SaveLayoutInput is the input for the save_layout tool.
type SaveLayoutInput struct {
	Name string `json:"name" jsonschema:"required,Profile name to save the current window layout under. Overwrites any existing profile of the same name."`
}

// SaveLayoutOutput is the output for the save_layout tool.
type SaveLayoutOutput struct {
	Name     string `json:"name"`
	Windows  int    `json:"windows"`
	Monitors int    `json:"monitors"`
}

// RestoreLayoutInput is the input for the restore_layout tool.
type RestoreLayoutInput struct {
	Name           string `json:"name" jsonschema:"required,Profile name to restore"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"Maximum seconds to keep polling for windows to appear (default: configured timeout)"`
	DryRun         bool   `json:"dry_run,omitempty" jsonschema:"Match windows but move nothing; report what would change"`
}

// RestoredWindow describes one record's outcome in a restore pass.
type RestoredWindow struct {
	WMClass string `json:"wm_class"`
	Title   string `json:"title"`
	Outcome string `json:"outcome"` // applied, failed, unmatched
}

// RestoreLayoutOutput is the output for the restore_layout tool.
type RestoreLayoutOutput struct {
	State   string           `json:"state"`
	Polls   int              `json:"polls"`
	Windows []RestoredWindow `json:"windows"`
}

// ListProfilesOutput is the output for the list_profiles tool.
type ListProfilesOutput struct {
	Profiles []string `json:"profiles"`
}

// DeleteProfileInput is the input for the delete_profile tool.
type DeleteProfileInput struct {
	Name string `json:"name" jsonschema:"required,Profile name to delete"`
}

// DeleteProfileOutput is the output for the delete_profile tool.
type DeleteProfileOutput struct {
	Deleted bool `json:"deleted"`
}

// WindowInfo describes one live window.
type WindowInfo struct {
	Handle     uint32 `json:"handle"`
	WMClass    string `json:"wm_class"`
	WMInstance string `json:"wm_instance"`
	Title      string `json:"title"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Desktop    int    `json:"desktop"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}
