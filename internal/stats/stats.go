// Package stats provides summaries of alignment inputs and results.
package stats

import (
	"fmt"

	"github.com/aria-lang/affinealign/internal/alignment"
	"github.com/aria-lang/affinealign/internal/sequence"
)

// SequenceStats represents composition statistics for a single sequence.
type SequenceStats struct {
	ID           string
	Length       int
	GCContent    float64
	ATContent    float64
	ACount       int
	CCount       int
	GCount       int
	TCount       int
	NCount       int
	OtherCount   int
	HasAmbiguous bool
}

// FromSequence calculates statistics for a sequence.
func FromSequence(seq *sequence.Sequence) *SequenceStats {
	counts := seq.BaseCounts()

	atContent := 0.0
	if total := counts.Total(); total > 0 {
		atContent = float64(counts.A+counts.T) / float64(total)
	}

	return &SequenceStats{
		ID:           seq.ID,
		Length:       seq.Len(),
		GCContent:    seq.GCContent(),
		ATContent:    atContent,
		ACount:       counts.A,
		CCount:       counts.C,
		GCount:       counts.G,
		TCount:       counts.T,
		NCount:       counts.N,
		OtherCount:   counts.Other,
		HasAmbiguous: counts.N > 0,
	}
}

func (s *SequenceStats) String() string {
	return fmt.Sprintf(`SequenceStats {
  id: %s
  length: %d
  GC content: %.1f%%
  AT content: %.1f%%
  A: %d, C: %d, G: %d, T: %d, N: %d, other: %d
}`, s.ID, s.Length, s.GCContent*100, s.ATContent*100,
		s.ACount, s.CCount, s.GCount, s.TCount, s.NCount, s.OtherCount)
}

// AlignmentStats summarizes a local alignment against its inputs.
type AlignmentStats struct {
	Score       int
	Length      int
	Matches     int
	Mismatches  int
	Gaps        int
	GapOpenings int
	Identity    float64
	// Coverage is the fraction of each input's residues inside the alignment.
	Coverage1 float64
	Coverage2 float64
}

// FromAlignment calculates statistics for an alignment of seq1 and seq2.
func FromAlignment(a *alignment.Alignment, seq1, seq2 *sequence.Sequence) *AlignmentStats {
	return &AlignmentStats{
		Score:       a.Score,
		Length:      a.Length(),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		Gaps:        a.TotalGaps(),
		GapOpenings: a.GapOpenings(),
		Identity:    a.Identity,
		Coverage1:   coverage(a.End1-a.Start1, seq1.Len()),
		Coverage2:   coverage(a.End2-a.Start2, seq2.Len()),
	}
}

func coverage(aligned, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(aligned) / float64(total)
}

func (s *AlignmentStats) String() string {
	return fmt.Sprintf(`AlignmentStats {
  score: %d
  length: %d
  matches: %d, mismatches: %d, gaps: %d (%d runs)
  identity: %.1f%%
  coverage: %.1f%% / %.1f%%
}`, s.Score, s.Length, s.Matches, s.Mismatches, s.Gaps, s.GapOpenings,
		s.Identity*100, s.Coverage1*100, s.Coverage2*100)
}
