package alignment

import (
	"fmt"
	"strings"
)

// GapChar is the gap marker in aligned sequences.
const GapChar = '-'

// Alignment represents the result of a local alignment between two sequences.
//
// AlignedSeq1 and AlignedSeq2 always have the same number of characters.
// Start and End are 0-based half-open residue coordinates of the aligned
// region in each input; an empty alignment has Start == End.
type Alignment struct {
	AlignedSeq1 string
	AlignedSeq2 string
	Score       int
	Start1      int
	End1        int
	Start2      int
	End2        int
	Identity    float64
}

// NewAlignment creates a new alignment result.
func NewAlignment(aligned1, aligned2 string, score int) (*Alignment, error) {
	r1, r2 := []rune(aligned1), []rune(aligned2)
	if len(r1) != len(r2) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}

	a := &Alignment{
		AlignedSeq1: aligned1,
		AlignedSeq2: aligned2,
		Score:       score,
		End1:        len(r1) - countGaps(r1),
		End2:        len(r2) - countGaps(r2),
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

func countGaps(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r == GapChar {
			n++
		}
	}
	return n
}

// columns returns both aligned sequences as runes.
func (a *Alignment) columns() ([]rune, []rune) {
	return []rune(a.AlignedSeq1), []rune(a.AlignedSeq2)
}

func (a *Alignment) calculateIdentity() float64 {
	n := a.Length()
	if n == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(n)
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len([]rune(a.AlignedSeq1))
}

// IsEmpty reports whether no similarity was found.
func (a *Alignment) IsEmpty() bool {
	return a.Length() == 0
}

// MatchCount returns the number of identical residue columns.
func (a *Alignment) MatchCount() int {
	s1, s2 := a.columns()
	count := 0
	for i := range s1 {
		if s1[i] == s2[i] && s1[i] != GapChar {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of differing residue columns.
func (a *Alignment) MismatchCount() int {
	s1, s2 := a.columns()
	count := 0
	for i := range s1 {
		if s1[i] != s2[i] && s1[i] != GapChar && s2[i] != GapChar {
			count++
		}
	}
	return count
}

// GapsSeq1 returns the number of gap columns in sequence 1.
func (a *Alignment) GapsSeq1() int {
	return strings.Count(a.AlignedSeq1, string(GapChar))
}

// GapsSeq2 returns the number of gap columns in sequence 2.
func (a *Alignment) GapsSeq2() int {
	return strings.Count(a.AlignedSeq2, string(GapChar))
}

// TotalGaps returns the total number of gap columns.
func (a *Alignment) TotalGaps() int {
	return a.GapsSeq1() + a.GapsSeq2()
}

// GapOpenings counts maximal gap runs in either sequence.
func (a *Alignment) GapOpenings() int {
	s1, s2 := a.columns()
	openings := 0
	inGap1, inGap2 := false, false

	for i := range s1 {
		if s1[i] == GapChar && !inGap1 {
			openings++
			inGap1 = true
		} else if s1[i] != GapChar {
			inGap1 = false
		}

		if s2[i] == GapChar && !inGap2 {
			openings++
			inGap2 = true
		} else if s2[i] != GapChar {
			inGap2 = false
		}
	}

	return openings
}

// Rescore sums the scoring parameters along the alignment columns, charging
// GapOpen once per maximal gap run and GapExtend for every gap column.
func (a *Alignment) Rescore(p Scoring) int {
	s1, s2 := a.columns()
	score := 0
	prev := State(-1)

	for i := range s1 {
		var cur State
		switch {
		case s1[i] == GapChar:
			cur = GapX
		case s2[i] == GapChar:
			cur = GapY
		default:
			cur = Match
		}

		switch {
		case cur == Match:
			score += p.Score(s1[i], s2[i])
		case cur == prev:
			score -= p.GapExtend
		default:
			score -= p.OpenCost()
		}
		prev = cur
	}
	return score
}

// ToCIGAR generates a CIGAR string: M match, X mismatch, I gap in
// sequence 1, D gap in sequence 2.
func (a *Alignment) ToCIGAR() string {
	s1, s2 := a.columns()
	if len(s1) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := range s1 {
		var op byte
		switch {
		case s1[i] == GapChar:
			op = 'I'
		case s2[i] == GapChar:
			op = 'D'
		case s1[i] == s2[i]:
			op = 'M'
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}
	fmt.Fprintf(&cigar, "%d%c", count, currentOp)

	return cigar.String()
}

// MatchLine returns the middle line of a pairwise display: '|' for
// identities, '.' for mismatches and ' ' for gaps.
func (a *Alignment) MatchLine() string {
	s1, s2 := a.columns()
	var line strings.Builder
	for i := range s1 {
		switch {
		case s1[i] == GapChar || s2[i] == GapChar:
			line.WriteByte(' ')
		case s1[i] == s2[i]:
			line.WriteByte('|')
		default:
			line.WriteByte('.')
		}
	}
	return line.String()
}

// Format returns a formatted string representation of the alignment.
func (a *Alignment) Format() string {
	return fmt.Sprintf("Seq1: %s\n      %s\nSeq2: %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedSeq1, a.MatchLine(), a.AlignedSeq2,
		a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d }",
		a.Score, a.Identity*100, a.Length())
}

// PercentIdentity calculates percent identity between two aligned sequences.
func PercentIdentity(aligned1, aligned2 string) (float64, error) {
	a, err := NewAlignment(aligned1, aligned2, 0)
	if err != nil {
		return 0, err
	}
	if a.IsEmpty() {
		return 0, fmt.Errorf("aligned sequences cannot be empty")
	}
	return a.Identity * 100.0, nil
}
