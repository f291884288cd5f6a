package alignment

// Aligner computes affine-gap local alignments with fixed scoring.
type Aligner struct {
	Scoring Scoring
	// MaxCells bounds the cells per lattice layer; <= 0 means unbounded.
	MaxCells int
}

// NewAligner creates an aligner with the default cell budget.
func NewAligner(scoring Scoring) *Aligner {
	return &Aligner{Scoring: scoring, MaxCells: DefaultMaxCells}
}

// Align performs affine-gap local alignment with the default cell budget.
func Align(seq1, seq2 string, scoring Scoring) (*Alignment, error) {
	return NewAligner(scoring).Align(seq1, seq2)
}

// Align returns the best local alignment of seq1 and seq2.
//
// Residues are compared as opaque characters; case is not normalized. Empty
// inputs, or inputs with no positive-scoring pair of regions, yield an empty
// alignment with score 0. Align fails with ErrScoringRange for parameters
// beyond MaxScoringMagnitude and with a *ResourceError when the lattice
// exceeds MaxCells.
func (a *Aligner) Align(seq1, seq2 string) (*Alignment, error) {
	if err := a.Scoring.Validate(); err != nil {
		return nil, err
	}
	s1, s2 := []rune(seq1), []rune(seq2)

	l, err := NewLattice(len(s1), len(s2), a.MaxCells)
	if err != nil {
		return nil, err
	}

	score, endI, endJ, state := fill(l, s1, s2, a.Scoring)
	aligned1, aligned2, startI, startJ := traceback(l, s1, s2, a.Scoring, endI, endJ, state)

	al, err := NewAlignment(aligned1, aligned2, score)
	if err != nil {
		return nil, err
	}
	al.Start1, al.End1 = startI, endI
	al.Start2, al.End2 = startJ, endJ
	return al, nil
}

// fill runs the forward recurrence over every interior cell and returns the
// best score with the cell and layer where it first occurred. The empty
// alignment at (0, 0) in Match is the floor.
func fill(l *Lattice, s1, s2 []rune, p Scoring) (best, bestI, bestJ int, bestState State) {
	bestState = Match

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			k := l.at(i, j)

			diag, _ := l.diagonal(i, j, p.Score(s1[i-1], s2[j-1]))
			l.M[k] = max(0, diag)
			l.Gx[k], _ = l.gapX(i, j, p)
			l.Gy[k], _ = l.gapY(i, j, p)

			if v, state := l.best(i, j); v > best {
				best, bestI, bestJ, bestState = v, i, j, state
			}
		}
	}
	return best, bestI, bestJ, bestState
}

// traceback walks back from (i, j) in the given layer, replaying the
// predecessor choices of fill. It stops at a zero Match cell or at the
// lattice edge and returns both aligned strings and the start coordinates.
func traceback(l *Lattice, s1, s2 []rune, p Scoring, i, j int, state State) (string, string, int, int) {
	var aligned1, aligned2 []rune

	for i > 0 && j > 0 {
		switch state {
		case Match:
			if l.M[l.at(i, j)] == 0 {
				return reverse(aligned1), reverse(aligned2), i, j
			}
			_, state = l.diagonal(i, j, p.Score(s1[i-1], s2[j-1]))
			aligned1 = append(aligned1, s1[i-1])
			aligned2 = append(aligned2, s2[j-1])
			i--
			j--
		case GapX:
			_, state = l.gapX(i, j, p)
			aligned1 = append(aligned1, GapChar)
			aligned2 = append(aligned2, s2[j-1])
			j--
		case GapY:
			_, state = l.gapY(i, j, p)
			aligned1 = append(aligned1, s1[i-1])
			aligned2 = append(aligned2, GapChar)
			i--
		}
	}

	return reverse(aligned1), reverse(aligned2), i, j
}

// reverse returns rs back to front as a string.
func reverse(rs []rune) string {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

// max returns the maximum of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
