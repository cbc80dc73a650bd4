package restore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/wsaver/internal/profile"
)

// fakeClock advances a fixed amount per Sleep, so poll counts map directly
// to elapsed time.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.sleeps++
}

// fakeEnumerator returns a scripted window set per poll; the last script
// entry repeats once exhausted.
type fakeEnumerator struct {
	polls   int
	byPoll  [][]profile.LiveWindow
	layout  profile.MonitorLayout
	listErr error
}

func (f *fakeEnumerator) ListWindows() ([]profile.LiveWindow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	i := f.polls
	f.polls++
	if len(f.byPoll) == 0 {
		return nil, nil
	}
	if i >= len(f.byPoll) {
		i = len(f.byPoll) - 1
	}
	return f.byPoll[i], nil
}

func (f *fakeEnumerator) Monitors() (profile.MonitorLayout, error) {
	return f.layout, nil
}

type applyCall struct {
	handle  uint32
	desktop int
	geom    profile.Geometry
	flags   profile.StateFlags
}

type fakeApplier struct {
	calls   []applyCall
	failFor map[uint32]error
}

func (f *fakeApplier) Apply(handle uint32, desktop int, geom profile.Geometry, flags profile.StateFlags) error {
	if err, ok := f.failFor[handle]; ok {
		return err
	}
	f.calls = append(f.calls, applyCall{handle: handle, desktop: desktop, geom: geom, flags: flags})
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var singleMonitor = profile.MonitorLayout{{X: 0, Y: 0, Width: 1920, Height: 1080}}

func termRecord() profile.WindowRecord {
	return profile.WindowRecord{
		WMClass:      "Terminal",
		WMInstance:   "term1",
		Title:        "bash",
		Geometry:     profile.Geometry{X: 0, Y: 0, Width: 800, Height: 600},
		MonitorIndex: 0,
		DesktopIndex: 1,
	}
}

func termProfile() *profile.Profile {
	return &profile.Profile{
		Name:    "test",
		Windows: []profile.WindowRecord{termRecord()},
		Layout:  singleMonitor,
	}
}

func newTestScheduler(enum Enumerator, applier Applier, clock Clock, timeout time.Duration) *Scheduler {
	return NewScheduler(enum, applier, Options{
		Interval: 500 * time.Millisecond,
		Timeout:  timeout,
		Clock:    clock,
		Logger:   discard(),
	})
}

func TestWindowAppearingAtSecondPollIsMatchedAndMoved(t *testing.T) {
	liveTerm := profile.LiveWindow{
		Handle: 42,
		Record: profile.WindowRecord{
			WMClass:    "Terminal",
			WMInstance: "term1",
			Title:      "bash - updated",
			Geometry:   profile.Geometry{X: 500, Y: 300, Width: 640, Height: 480},
		},
	}
	enum := &fakeEnumerator{
		layout: singleMonitor,
		byPoll: [][]profile.LiveWindow{
			{},         // poll 1: nothing yet
			{liveTerm}, // poll 2: window appeared with an updated title
		},
	}
	applier := &fakeApplier{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := newTestScheduler(enum, applier, clock, 2*time.Second)

	result, err := s.Run(context.Background(), termProfile())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.State != StateDone {
		t.Fatalf("expected Done, got %s", result.State)
	}
	if result.Polls != 2 {
		t.Fatalf("expected 2 polls, got %d", result.Polls)
	}
	if len(applier.calls) != 1 {
		t.Fatalf("expected 1 apply call, got %d", len(applier.calls))
	}
	call := applier.calls[0]
	if call.handle != 42 {
		t.Fatalf("expected handle 42, got %d", call.handle)
	}
	want := profile.Geometry{X: 0, Y: 0, Width: 800, Height: 600}
	if call.geom != want {
		t.Fatalf("expected geometry %+v, got %+v", want, call.geom)
	}
	if call.desktop != 1 {
		t.Fatalf("expected desktop 1, got %d", call.desktop)
	}
}

func TestTimeoutWithNoWindowsTerminates(t *testing.T) {
	enum := &fakeEnumerator{layout: singleMonitor}
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := newTestScheduler(enum, &fakeApplier{}, clock, 2*time.Second)

	result, err := s.Run(context.Background(), termProfile())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.State != StateTimedOut {
		t.Fatalf("expected TimedOut, got %s", result.State)
	}
	if len(result.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched record, got %d", len(result.Unmatched))
	}
	// timeout=2s, interval=0.5s: polls at t=0,0.5,...,2.0, then stop.
	// Total simulated time must stay within timeout + one interval.
	if elapsed := clock.now.Sub(time.Unix(0, 0)); elapsed > 2500*time.Millisecond {
		t.Fatalf("loop overran timeout+interval: %s", elapsed)
	}
	if result.Polls != 5 {
		t.Fatalf("expected 5 polls, got %d", result.Polls)
	}
}

func TestMissingMonitorFallsBackToPrimaryClamped(t *testing.T) {
	// Captured on a 2-monitor layout, restored on a single monitor.
	rec := profile.WindowRecord{
		WMClass:      "Browser",
		WMInstance:   "nav",
		Title:        "docs",
		Geometry:     profile.Geometry{X: 3200, Y: 700, Width: 800, Height: 600},
		MonitorIndex: 1,
		DesktopIndex: 0,
	}
	p := &profile.Profile{
		Name:    "dual",
		Windows: []profile.WindowRecord{rec},
		Layout: profile.MonitorLayout{
			{X: 0, Y: 0, Width: 1920, Height: 1080},
			{X: 1920, Y: 0, Width: 1920, Height: 1080},
		},
	}
	enum := &fakeEnumerator{
		layout: singleMonitor,
		byPoll: [][]profile.LiveWindow{{
			{Handle: 9, Record: profile.WindowRecord{WMClass: "Browser", WMInstance: "nav", Title: "docs"}},
		}},
	}
	applier := &fakeApplier{}
	s := newTestScheduler(enum, applier, &fakeClock{now: time.Unix(0, 0)}, 2*time.Second)

	result, err := s.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.State != StateDone {
		t.Fatalf("expected Done, got %s", result.State)
	}
	got := applier.calls[0].geom
	if got.X+got.Width > 1920 {
		t.Fatalf("x+width=%d off the single monitor", got.X+got.Width)
	}
	if got.Y+got.Height > 1080 {
		t.Fatalf("y+height=%d off the single monitor", got.Y+got.Height)
	}
}

func TestApplyRaceIsSoftFailure(t *testing.T) {
	vanish := errors.New("window gone")
	p := termProfile()
	p.Windows = append(p.Windows, profile.WindowRecord{
		WMClass:    "Editor",
		WMInstance: "ed",
		Title:      "notes",
		Geometry:   profile.Geometry{X: 10, Y: 10, Width: 400, Height: 300},
	})

	enum := &fakeEnumerator{
		layout: singleMonitor,
		byPoll: [][]profile.LiveWindow{{
			{Handle: 1, Record: profile.WindowRecord{WMClass: "Terminal", WMInstance: "term1", Title: "bash"}},
			{Handle: 2, Record: profile.WindowRecord{WMClass: "Editor", WMInstance: "ed", Title: "notes"}},
		}},
	}
	applier := &fakeApplier{failFor: map[uint32]error{1: vanish}}
	s := newTestScheduler(enum, applier, &fakeClock{now: time.Unix(0, 0)}, 2*time.Second)

	result, err := s.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("expected soft failure, got fatal error: %v", err)
	}
	if result.State != StateDone {
		t.Fatalf("expected Done, got %s", result.State)
	}
	if len(result.Failed) != 1 || result.Failed[0].Handle != 1 {
		t.Fatalf("expected one failure for handle 1, got %+v", result.Failed)
	}
	if len(result.Applied) != 1 || result.Applied[0].Handle != 2 {
		t.Fatalf("expected the other record applied, got %+v", result.Applied)
	}
	if len(result.Unmatched) != 0 {
		t.Fatalf("expected no unmatched records, got %d", len(result.Unmatched))
	}
}

func TestNoHandleClaimedTwice(t *testing.T) {
	// Two identical records, one live window. The single window may satisfy
	// only one record; the other must time out unmatched.
	p := &profile.Profile{
		Name:    "dupes",
		Windows: []profile.WindowRecord{termRecord(), termRecord()},
		Layout:  singleMonitor,
	}
	enum := &fakeEnumerator{
		layout: singleMonitor,
		byPoll: [][]profile.LiveWindow{{
			{Handle: 7, Record: profile.WindowRecord{WMClass: "Terminal", WMInstance: "term1", Title: "bash"}},
		}},
	}
	applier := &fakeApplier{}
	s := newTestScheduler(enum, applier, &fakeClock{now: time.Unix(0, 0)}, 2*time.Second)

	result, err := s.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.State != StateTimedOut {
		t.Fatalf("expected TimedOut, got %s", result.State)
	}
	if len(applier.calls) != 1 {
		t.Fatalf("expected exactly 1 apply, got %d", len(applier.calls))
	}
	if len(result.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched record, got %d", len(result.Unmatched))
	}
}

func TestCancellationBetweenPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enum := &fakeEnumerator{layout: singleMonitor}
	s := newTestScheduler(enum, &fakeApplier{}, &fakeClock{now: time.Unix(0, 0)}, 2*time.Second)

	result, err := s.Run(ctx, termProfile())
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.State != StateTimedOut {
		t.Fatalf("expected partial result with TimedOut state, got %+v", result)
	}
	if enum.polls != 0 {
		t.Fatalf("expected no polls after pre-cancelled context, got %d", enum.polls)
	}
}

func TestEnumerationErrorIsFatal(t *testing.T) {
	boom := errors.New("connection reset")
	enum := &fakeEnumerator{layout: singleMonitor, listErr: boom}
	s := newTestScheduler(enum, &fakeApplier{}, &fakeClock{now: time.Unix(0, 0)}, 2*time.Second)

	if _, err := s.Run(context.Background(), termProfile()); !errors.Is(err, boom) {
		t.Fatalf("expected enumeration error to abort the run, got %v", err)
	}
}

func TestDryRunAppliesNothing(t *testing.T) {
	enum := &fakeEnumerator{
		layout: singleMonitor,
		byPoll: [][]profile.LiveWindow{{
			{Handle: 5, Record: profile.WindowRecord{WMClass: "Terminal", WMInstance: "term1", Title: "bash"}},
		}},
	}
	applier := &fakeApplier{}
	s := NewScheduler(enum, applier, Options{
		Interval: 500 * time.Millisecond,
		Timeout:  2 * time.Second,
		Clock:    &fakeClock{now: time.Unix(0, 0)},
		Logger:   discard(),
		DryRun:   true,
	})

	result, err := s.Run(context.Background(), termProfile())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.State != StateDone {
		t.Fatalf("expected Done, got %s", result.State)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 would-apply record, got %d", len(result.Applied))
	}
	if len(applier.calls) != 0 {
		t.Fatalf("dry run must not touch windows, got %d applies", len(applier.calls))
	}
}
