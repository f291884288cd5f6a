// Package sequence provides the residue sequences fed to the aligner.
//
// Residues are opaque characters: nothing here changes case or rejects
// symbols unless the caller asks for it through Upper or Validate.
package sequence

import (
	"fmt"
	"strings"
)

// Alphabet names a residue alphabet used for optional validation.
type Alphabet int

const (
	// Any accepts every character
	Any Alphabet = iota
	// DNA accepts A, C, G, T and N
	DNA
	// RNA accepts A, C, G, U and N
	RNA
	// Protein accepts the 20 amino acids plus B, Z, X and the stop '*'
	Protein
)

func (a Alphabet) String() string {
	switch a {
	case Any:
		return "any"
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Protein:
		return "protein"
	default:
		return "unknown"
	}
}

// ParseAlphabet parses an alphabet name as accepted by the command line.
func ParseAlphabet(name string) (Alphabet, error) {
	switch strings.ToLower(name) {
	case "", "any":
		return Any, nil
	case "dna":
		return DNA, nil
	case "rna":
		return RNA, nil
	case "protein", "aa":
		return Protein, nil
	default:
		return Any, fmt.Errorf("unknown alphabet %q", name)
	}
}

// Sequence is an immutable residue sequence with optional record metadata.
type Sequence struct {
	Residues    string
	ID          string
	Description string
}

// New creates a sequence from raw residues.
func New(residues string) *Sequence {
	return &Sequence{Residues: residues}
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return len([]rune(s.Residues))
}

// IsEmpty reports whether the sequence has no residues.
func (s *Sequence) IsEmpty() bool {
	return len(s.Residues) == 0
}

// Upper returns a copy of the sequence with residues upper-cased.
func (s *Sequence) Upper() *Sequence {
	return &Sequence{
		Residues:    strings.ToUpper(s.Residues),
		ID:          s.ID,
		Description: s.Description,
	}
}

// Validate checks every residue against the alphabet.
func (s *Sequence) Validate(alpha Alphabet) error {
	return Validate(s.Residues, alpha)
}

// Subsequence returns residues [start, end) as a new sequence.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	rs := []rune(s.Residues)
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end < start {
		return nil, fmt.Errorf("end must not be less than start")
	}
	if end > len(rs) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{
		Residues:    string(rs[start:end]),
		ID:          s.ID,
		Description: s.Description,
	}, nil
}

// BaseCounts holds nucleotide counts. Other tracks everything else.
type BaseCounts struct {
	A     int
	C     int
	G     int
	T     int // Also counts U for RNA
	N     int
	Other int
}

// BaseCounts returns the count of each base type, case-insensitively.
func (s *Sequence) BaseCounts() BaseCounts {
	counts := BaseCounts{}

	for _, b := range s.Residues {
		switch b {
		case 'A', 'a':
			counts.A++
		case 'C', 'c':
			counts.C++
		case 'G', 'g':
			counts.G++
		case 'T', 't', 'U', 'u':
			counts.T++
		case 'N', 'n':
			counts.N++
		default:
			counts.Other++
		}
	}

	return counts
}

// Total returns the total count of all residues.
func (bc BaseCounts) Total() int {
	return bc.A + bc.C + bc.G + bc.T + bc.N + bc.Other
}

// GCContent calculates the proportion of G and C residues.
func (s *Sequence) GCContent() float64 {
	counts := s.BaseCounts()
	total := counts.Total()
	if total == 0 {
		return 0.0
	}
	return float64(counts.G+counts.C) / float64(total)
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Residues)
	}
	return s.Residues
}
