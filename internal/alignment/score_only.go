package alignment

// ScoreOnly calculates the best local alignment score without traceback.
//
// Uses O(m) space instead of O(n*m) by keeping two rows of each layer. The
// result always equals the Score of Align on the same input. Parameters must
// pass Scoring.Validate.
func ScoreOnly(seq1, seq2 string, p Scoring) int {
	s1, s2 := []rune(seq1), []rune(seq2)
	m := len(s2)

	prevM, currM := make([]int, m+1), make([]int, m+1)
	prevGx, currGx := negRow(m+1), negRow(m+1)
	prevGy, currGy := negRow(m+1), negRow(m+1)

	best := 0
	for i := 1; i <= len(s1); i++ {
		currM[0], currGx[0], currGy[0] = 0, NegInf, NegInf

		for j := 1; j <= m; j++ {
			s := p.Score(s1[i-1], s2[j-1])
			diag := max(prevM[j-1]+s, max(prevGx[j-1]+s, prevGy[j-1]+s))
			currM[j] = max(0, diag)
			currGx[j] = max(currM[j-1]-p.OpenCost(), currGx[j-1]-p.GapExtend)
			currGy[j] = max(prevM[j]-p.OpenCost(), prevGy[j]-p.GapExtend)

			best = max(best, max(currM[j], max(currGx[j], currGy[j])))
		}

		// Swap rows
		prevM, currM = currM, prevM
		prevGx, currGx = currGx, prevGx
		prevGy, currGy = currGy, prevGy
	}

	return best
}

func negRow(n int) []int {
	row := make([]int, n)
	for j := range row {
		row[j] = NegInf
	}
	return row
}
