package profile

import (
	"errors"
	"os"
	"reflect"
	"testing"
)

func sampleProfile(name string) *Profile {
	return &Profile{
		Name: name,
		Windows: []WindowRecord{
			{
				Title:        "bash",
				WMClass:      "Terminal",
				WMInstance:   "term1",
				Geometry:     Geometry{X: 0, Y: 0, Width: 800, Height: 600},
				MonitorIndex: 0,
				DesktopIndex: 1,
			},
			{
				Title:        "inbox - mail",
				WMClass:      "Mail",
				WMInstance:   "mail",
				Geometry:     Geometry{X: 1920, Y: 100, Width: 1200, Height: 900},
				MonitorIndex: 1,
				DesktopIndex: 0,
				StateFlags:   StateFlags{Maximized: true, Sticky: true},
			},
		},
		Layout: MonitorLayout{
			{X: 0, Y: 0, Width: 1920, Height: 1080},
			{X: 1920, Y: 0, Width: 1920, Height: 1080},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	want := sampleProfile("work")

	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load("work")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveOverwritesPriorProfile(t *testing.T) {
	store := NewStore(t.TempDir())
	first := sampleProfile("work")
	if err := store.Save(first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := sampleProfile("work")
	second.Windows = second.Windows[:1]
	if err := store.Save(second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.Load("work")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Windows) != 1 {
		t.Fatalf("expected overwritten profile with 1 window, got %d", len(got.Windows))
	}
}

func TestLoadMissingProfile(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingProfileLeavesDirUnchanged(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save(sampleProfile("keep")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	before, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}

	if err := store.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("directory changed on failed delete: %d -> %d entries", len(before), len(after))
	}
}

func TestDeleteRemovesProfile(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save(sampleProfile("gone")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListReturnsSortedNames(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.Save(sampleProfile(name)); err != nil {
			t.Fatalf("save %q failed: %v", name, err)
		}
	}
	names, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestListEmptyDirIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing")
	names, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
}

func TestUnsafeNamesDoNotCollide(t *testing.T) {
	store := NewStore(t.TempDir())

	// Both sanitize to "work_laptop"; the hash suffix must keep them apart.
	a := sampleProfile("work/laptop")
	b := sampleProfile("work:laptop")
	a.Windows = a.Windows[:1]

	if err := store.Save(a); err != nil {
		t.Fatalf("save a failed: %v", err)
	}
	if err := store.Save(b); err != nil {
		t.Fatalf("save b failed: %v", err)
	}

	gotA, err := store.Load("work/laptop")
	if err != nil {
		t.Fatalf("load a failed: %v", err)
	}
	gotB, err := store.Load("work:laptop")
	if err != nil {
		t.Fatalf("load b failed: %v", err)
	}
	if len(gotA.Windows) != 1 || len(gotB.Windows) != 2 {
		t.Fatalf("profiles collided: a=%d windows, b=%d windows", len(gotA.Windows), len(gotB.Windows))
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 profiles, got %v", names)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", "  ", ".", ".."} {
		if err := ValidateName(name); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
	if err := ValidateName("work/laptop"); err != nil {
		t.Fatalf("unexpected error for sanitizable name: %v", err)
	}
}
