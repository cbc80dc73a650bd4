package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a named profile has no persisted file.
var ErrNotFound = errors.New("profile not found")

// Store persists profiles as one YAML file each under a base directory.
// Writes go through a temp file and rename so a crash mid-save never
// corrupts an existing profile.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the standard profile directory, ~/.config/wsaver/profiles.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wsaver", "profiles"), nil
}

// ValidateName rejects empty names and names that would escape the profile
// directory. Any other character is allowed; unsafe ones are handled by
// filename sanitization.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

// fileName maps a profile name to a filesystem-safe file name. Names that
// survive sanitization unchanged map directly; otherwise a short hash of the
// original name is appended so distinct names that sanitize identically
// never share a file.
func fileName(name string) string {
	sanitized := sanitize(name)
	if sanitized == name {
		return sanitized + ".yaml"
	}
	sum := sha256.Sum256([]byte(name))
	return sanitized + "-" + hex.EncodeToString(sum[:4]) + ".yaml"
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" || s == "." || s == ".." {
		return "profile"
	}
	return s
}

func (s *Store) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, fileName(name)), nil
}

// Save writes the profile, replacing any prior profile with the same name.
func (s *Store) Save(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile %q: %w", p.Name, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write profile %q: %w", p.Name, err)
	}
	return nil
}

// Load reads a profile by name. Returns ErrNotFound if no profile with that
// name has been saved.
func (s *Store) Load(name string) (*Profile, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

// Delete removes a persisted profile. Returns ErrNotFound if absent; the
// directory is left untouched on failure.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("profile %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}
	return nil
}

// List returns the names of all persisted profiles, sorted. Names are read
// from the profile documents themselves since file names may carry a hash
// suffix.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			continue
		}
		name := p.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
