// Package affine provides a high-level API for affine-gap local alignment.
//
// Example usage:
//
//	seq1, err := affine.ReadFASTA("query.fasta")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	seq2, err := affine.ReadFASTA("target.fasta")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	alignment, err := affine.AlignSequences(seq1, seq2, affine.DefaultScoring())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(alignment.Format())
package affine

import (
	"fmt"

	"github.com/aria-lang/affinealign/internal/alignment"
	"github.com/aria-lang/affinealign/internal/sequence"
	"github.com/aria-lang/affinealign/internal/stats"
)

// Re-export types for convenience
type (
	Sequence       = sequence.Sequence
	Alphabet       = sequence.Alphabet
	Alignment      = alignment.Alignment
	Scoring        = alignment.Scoring
	Aligner        = alignment.Aligner
	ResourceError  = alignment.ResourceError
	SequenceError  = sequence.SequenceError
	SequenceStats  = stats.SequenceStats
	AlignmentStats = stats.AlignmentStats
)

// Constants
const (
	Any     = sequence.Any
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Protein = sequence.Protein

	DefaultMaxCells     = alignment.DefaultMaxCells
	MaxScoringMagnitude = alignment.MaxScoringMagnitude
)

// Errors
var (
	ErrLatticeTooLarge = alignment.ErrLatticeTooLarge
	ErrScoringRange    = alignment.ErrScoringRange
	ErrNoRecords       = sequence.ErrNoRecords
	ErrMultipleRecords = sequence.ErrMultipleRecords
)

// NewSequence creates a sequence from raw residues.
func NewSequence(residues string) *Sequence {
	return sequence.New(residues)
}

// ReadFASTA reads the single record of a FASTA file.
func ReadFASTA(filename string) (*Sequence, error) {
	return sequence.ReadFASTA(filename)
}

// ParseAlphabet parses an alphabet name: "any", "dna", "rna" or "protein".
func ParseAlphabet(name string) (Alphabet, error) {
	return sequence.ParseAlphabet(name)
}

// NewScoring creates scoring parameters.
func NewScoring(match, mismatch, gapOpen, gapExtend int) Scoring {
	return alignment.NewScoring(match, mismatch, gapOpen, gapExtend)
}

// DefaultScoring returns the default DNA scoring parameters.
func DefaultScoring() Scoring {
	return alignment.DefaultDNA()
}

// ScoringPreset returns a named scoring scheme: "dna" or "blast".
func ScoringPreset(name string) (Scoring, error) {
	return alignment.Preset(name)
}

// CheckCells reports a *ResourceError when aligning sequences of length n
// and m would exceed maxCells lattice cells per layer.
func CheckCells(n, m, maxCells int) error {
	return alignment.CheckCells(n, m, maxCells)
}

// NewAligner creates an aligner with the default lattice budget.
func NewAligner(scoring Scoring) *Aligner {
	return alignment.NewAligner(scoring)
}

// Align performs affine-gap local alignment of two raw sequences.
func Align(seq1, seq2 string, scoring Scoring) (*Alignment, error) {
	return alignment.Align(seq1, seq2, scoring)
}

// AlignSequences performs affine-gap local alignment of two sequences.
func AlignSequences(seq1, seq2 *Sequence, scoring Scoring) (*Alignment, error) {
	return alignment.Align(seq1.Residues, seq2.Residues, scoring)
}

// Score computes the best local alignment score in linear memory.
func Score(seq1, seq2 string, scoring Scoring) int {
	return alignment.ScoreOnly(seq1, seq2, scoring)
}

// SequenceStatistics calculates composition statistics for a sequence.
func SequenceStatistics(seq *Sequence) *SequenceStats {
	return stats.FromSequence(seq)
}

// AlignmentStatistics summarizes an alignment of seq1 and seq2.
func AlignmentStatistics(a *Alignment, seq1, seq2 *Sequence) *AlignmentStats {
	return stats.FromAlignment(a, seq1, seq2)
}

// Version returns the affinealign version.
func Version() string {
	return "1.0.0"
}

// Info returns information about affinealign.
func Info() string {
	return fmt.Sprintf(`affinealign v%s - Affine-Gap Local Sequence Alignment

Features:
  - Gotoh/Smith-Waterman local alignment with affine gap penalties
  - Deterministic traceback (ties: match, then gap in seq1, then gap in seq2)
  - Linear-memory score-only mode
  - FASTA input, CIGAR and identity summaries
  - CLI and REST API front ends
`, Version())
}
