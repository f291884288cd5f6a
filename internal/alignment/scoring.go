// Package alignment provides affine-gap local sequence alignment.
//
// This package implements Gotoh's refinement of the Smith-Waterman
// algorithm: three coupled score lattices (match, gap in sequence 1, gap in
// sequence 2) and a traceback that replays the forward pass decisions.
package alignment

import (
	"errors"
	"fmt"
	"strings"
)

// State identifies the lattice layer an alignment column belongs to.
type State int

const (
	// Match is a column pairing one residue from each sequence
	Match State = iota
	// GapX is a column with a gap in sequence 1 (advances sequence 2)
	GapX
	// GapY is a column with a gap in sequence 2 (advances sequence 1)
	GapY
)

func (s State) String() string {
	switch s {
	case Match:
		return "match"
	case GapX:
		return "gap-x"
	case GapY:
		return "gap-y"
	default:
		return "unknown"
	}
}

// MaxScoringMagnitude bounds every scoring parameter. Sums of bounded
// parameters over any lattice path stay far from NegInf and int overflow.
const MaxScoringMagnitude = 1 << 24

// ErrScoringRange is returned for a parameter beyond MaxScoringMagnitude.
var ErrScoringRange = errors.New("scoring parameter out of range")

// Scoring holds the four affine scoring parameters.
//
// GapOpen and GapExtend are costs: they are subtracted from the score. A gap
// run of length k costs GapOpen + k*GapExtend. No sign constraints are
// enforced; negative costs act as bonuses.
type Scoring struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// NewScoring creates scoring parameters.
func NewScoring(match, mismatch, gapOpen, gapExtend int) Scoring {
	return Scoring{
		Match:     match,
		Mismatch:  mismatch,
		GapOpen:   gapOpen,
		GapExtend: gapExtend,
	}
}

// DefaultDNA creates a default DNA scoring scheme.
func DefaultDNA() Scoring {
	return Scoring{
		Match:     2,
		Mismatch:  -1,
		GapOpen:   3,
		GapExtend: 1,
	}
}

// BLASTLike creates a BLASTN-like scoring scheme.
func BLASTLike() Scoring {
	return Scoring{
		Match:     1,
		Mismatch:  -3,
		GapOpen:   5,
		GapExtend: 2,
	}
}

// Preset returns a named scoring scheme: "dna" or "blast".
func Preset(name string) (Scoring, error) {
	switch strings.ToLower(name) {
	case "dna":
		return DefaultDNA(), nil
	case "blast":
		return BLASTLike(), nil
	default:
		return Scoring{}, fmt.Errorf("unknown scoring preset %q", name)
	}
}

// Validate checks that every parameter lies within MaxScoringMagnitude.
func (s Scoring) Validate() error {
	params := []struct {
		name  string
		value int
	}{
		{"match", s.Match},
		{"mismatch", s.Mismatch},
		{"gap open", s.GapOpen},
		{"gap extend", s.GapExtend},
	}
	for _, p := range params {
		if p.value > MaxScoringMagnitude || p.value < -MaxScoringMagnitude {
			return fmt.Errorf("%w: %s %d exceeds magnitude %d",
				ErrScoringRange, p.name, p.value, MaxScoringMagnitude)
		}
	}
	return nil
}

// Score returns the substitution score for two residues.
func (s Scoring) Score(a, b rune) int {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// OpenCost is the cost of the first column of a gap run.
func (s Scoring) OpenCost() int {
	return s.GapOpen + s.GapExtend
}

// String returns a string representation of the scoring parameters.
func (s Scoring) String() string {
	return fmt.Sprintf("Scoring { match: %d, mismatch: %d, gap_open: %d, gap_extend: %d }",
		s.Match, s.Mismatch, s.GapOpen, s.GapExtend)
}
