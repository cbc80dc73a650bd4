// Package restore drives the restoration of a saved profile: a bounded
// polling loop that matches newly-appearing windows to saved records and
// applies their geometry, desktop, and state.
package restore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/wsaver/internal/geometry"
	"github.com/1broseidon/wsaver/internal/match"
	"github.com/1broseidon/wsaver/internal/profile"
)

// State is the scheduler's lifecycle state.
type State string

const (
	StatePending  State = "pending"
	StatePolling  State = "polling"
	StateApplying State = "applying"
	StateDone     State = "done"
	StateTimedOut State = "timed_out"
)

// Enumerator provides fresh window and monitor snapshots per poll.
type Enumerator interface {
	ListWindows() ([]profile.LiveWindow, error)
	Monitors() (profile.MonitorLayout, error)
}

// Applier applies desktop, geometry, and state flags to a live window.
type Applier interface {
	Apply(handle uint32, desktop int, geom profile.Geometry, flags profile.StateFlags) error
}

// Clock abstracts time so tests can simulate windows appearing at controlled
// poll counts without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Options configure a restoration run.
type Options struct {
	// Interval between polls; defaults to 500ms.
	Interval time.Duration
	// Timeout bounds the total elapsed time; defaults to 30s.
	Timeout time.Duration
	// Weights is the matcher scoring policy; zero value means defaults.
	Weights match.Weights
	// Clock overrides the system clock, for tests.
	Clock Clock
	// DryRun matches records but applies nothing.
	DryRun bool
	// Logger receives per-record progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Applied pairs a record with the live handle it was matched to.
type Applied struct {
	Record profile.WindowRecord
	Handle uint32
	// Geometry is the absolute geometry that was applied, after projection
	// onto the current monitor layout.
	Geometry profile.Geometry
}

// Failure is a per-record soft failure: the window vanished (or refused the
// request) between match and apply.
type Failure struct {
	Record profile.WindowRecord
	Handle uint32
	Err    error
}

// Result summarizes one restoration pass.
type Result struct {
	State     State
	Applied   []Applied
	Failed    []Failure
	Unmatched []profile.WindowRecord
	Polls     int
	Elapsed   time.Duration
}

// Scheduler restores one profile. It is single-use: construct, Run once,
// inspect the Result.
type Scheduler struct {
	enum    Enumerator
	applier Applier
	opts    Options
	state   State
}

// NewScheduler builds a scheduler around an enumerator and applier. Both are
// interfaces so tests can drive the loop with fakes.
func NewScheduler(enum Enumerator, applier Applier, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Weights == (match.Weights{}) {
		opts.Weights = match.DefaultWeights()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		enum:    enum,
		applier: applier,
		opts:    opts,
		state:   StatePending,
	}
}

// State reports the scheduler's current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Run polls until every record is matched, the timeout elapses, or the
// context is cancelled (checked at the top of each iteration; applied
// geometry is never rolled back). Enumeration failures abort the run; apply
// failures are soft and per-record. The returned Result is non-nil whenever
// the loop ran to a terminal state, including TimedOut.
func (s *Scheduler) Run(ctx context.Context, p *profile.Profile) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is nil")
	}

	logger := s.opts.Logger
	clock := s.opts.Clock
	start := clock.Now()
	deadline := start.Add(s.opts.Timeout)

	// Records still awaiting a window, in capture order.
	remaining := make([]int, 0, len(p.Windows))
	for i := range p.Windows {
		remaining = append(remaining, i)
	}
	// Handles claimed by earlier matches; persists across polls so no
	// window is ever booked twice in one pass.
	claimed := make(map[uint32]bool)

	result := &Result{State: StatePolling}
	s.state = StatePolling

	for {
		if err := ctx.Err(); err != nil {
			result.State = StateTimedOut
			s.state = StateTimedOut
			s.finish(result, p, remaining, start)
			return result, fmt.Errorf("restoration cancelled: %w", err)
		}

		result.Polls++
		windows, err := s.enum.ListWindows()
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate windows: %w", err)
		}
		layout, err := s.enum.Monitors()
		if err != nil {
			return nil, fmt.Errorf("failed to read monitor layout: %w", err)
		}

		still := remaining[:0]
		for _, idx := range remaining {
			rec := p.Windows[idx]
			m := match.Match(rec, windows, claimed, s.opts.Weights)
			if m == nil {
				still = append(still, idx)
				continue
			}
			claimed[m.Handle] = true

			s.state = StateApplying
			applied, err := s.apply(rec, m.Handle, p.Layout, layout, logger)
			s.state = StatePolling
			if err != nil {
				// The window vanished between match and apply, or the WM
				// refused. Soft failure: keep going with the rest.
				logger.Warn("failed to apply record",
					"class", rec.WMClass, "title", rec.Title, "error", err)
				result.Failed = append(result.Failed, Failure{Record: rec, Handle: m.Handle, Err: err})
				continue
			}
			result.Applied = append(result.Applied, applied)
		}
		remaining = still

		if len(remaining) == 0 {
			result.State = StateDone
			s.state = StateDone
			s.finish(result, p, remaining, start)
			return result, nil
		}

		if !clock.Now().Before(deadline) {
			result.State = StateTimedOut
			s.state = StateTimedOut
			s.finish(result, p, remaining, start)
			logger.Warn("restoration timed out",
				"unmatched", len(result.Unmatched), "polls", result.Polls)
			return result, nil
		}

		clock.Sleep(s.opts.Interval)
	}
}

func (s *Scheduler) apply(rec profile.WindowRecord, handle uint32, saved, current profile.MonitorLayout, logger *slog.Logger) (Applied, error) {
	// The saved geometry is absolute in the captured layout. Recover the
	// monitor-relative offset against that layout, then project it by the
	// saved monitor index onto the layout as it exists now; a lost monitor
	// degrades to the primary and the result stays clamped on screen.
	_, rel := geometry.ToRelative(rec.Geometry, saved)
	abs := geometry.ToAbsolute(rec.MonitorIndex, rel, current)

	a := Applied{Record: rec, Handle: handle, Geometry: abs}
	if s.opts.DryRun {
		logger.Info("would apply record",
			"class", rec.WMClass, "title", rec.Title,
			"x", abs.X, "y", abs.Y, "width", abs.Width, "height", abs.Height,
			"desktop", rec.DesktopIndex)
		return a, nil
	}

	if err := s.applier.Apply(handle, rec.DesktopIndex, abs, rec.StateFlags); err != nil {
		return Applied{}, err
	}
	logger.Info("applied record",
		"class", rec.WMClass, "title", rec.Title,
		"x", abs.X, "y", abs.Y, "width", abs.Width, "height", abs.Height,
		"desktop", rec.DesktopIndex)
	return a, nil
}

func (s *Scheduler) finish(result *Result, p *profile.Profile, remaining []int, start time.Time) {
	for _, idx := range remaining {
		result.Unmatched = append(result.Unmatched, p.Windows[idx])
	}
	result.Elapsed = s.opts.Clock.Now().Sub(start)
}
