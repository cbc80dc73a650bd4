// Package match scores live windows against saved window records. Matching
// is pure attribute comparison; window handles are never part of identity
// since they do not survive application restarts.
package match

import (
	"strings"

	"github.com/1broseidon/wsaver/internal/profile"
)

// Weights control candidate scoring. WMClass equality is a hard filter, not
// a weighted signal: no match is ever attempted across classes.
type Weights struct {
	Instance       float64 `yaml:"instance"`
	TitleExact     float64 `yaml:"title_exact"`
	TitleSubstring float64 `yaml:"title_substring"`
}

// DefaultWeights returns the default scoring policy: instance equality
// dominates, exact title beats a substring hit.
func DefaultWeights() Weights {
	return Weights{
		Instance:       2,
		TitleExact:     1,
		TitleSubstring: 0.5,
	}
}

// Match selects the best live candidate for a saved record, skipping any
// handle already claimed earlier in the same restoration pass. Candidates
// whose wmClass differs from the record's are never considered. Ties are
// broken by candidate order (first seen wins), so results are deterministic
// for a fixed enumeration order. Returns nil when nothing matches; that is
// not an error, the caller decides whether to retry.
func Match(rec profile.WindowRecord, candidates []profile.LiveWindow, claimed map[uint32]bool, w Weights) *profile.LiveWindow {
	var best *profile.LiveWindow
	bestScore := -1.0

	for i := range candidates {
		c := &candidates[i]
		if claimed[c.Handle] {
			continue
		}
		if c.Record.WMClass != rec.WMClass {
			continue
		}
		score := Score(rec, c.Record, w)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// Score computes the similarity of a live window to a saved record, assuming
// the wmClass filter has already passed.
func Score(rec, live profile.WindowRecord, w Weights) float64 {
	score := 0.0
	if live.WMInstance == rec.WMInstance {
		score += w.Instance
	}
	if live.Title == rec.Title {
		score += w.TitleExact
	} else if rec.Title != "" && strings.Contains(live.Title, rec.Title) {
		// Apps commonly append a document name to the saved title.
		score += w.TitleSubstring
	}
	return score
}
