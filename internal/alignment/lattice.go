package alignment

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// NegInf marks lattice cells that no alignment can reach. It sits far below
// any reachable score so that adding scores to it never climbs back above one.
const NegInf = math.MinInt / 4

// DefaultMaxCells is the default per-layer cell budget for a lattice.
const DefaultMaxCells = 1 << 27

// ErrLatticeTooLarge is returned when a lattice exceeds the cell budget.
var ErrLatticeTooLarge = errors.New("score lattice too large")

// ResourceError reports a lattice that cannot be allocated.
type ResourceError struct {
	Rows     int
	Cols     int
	MaxCells int
}

func (e *ResourceError) Error() string {
	need := float64(e.Rows) * float64(e.Cols) * 3 * strconv.IntSize / 8
	return fmt.Sprintf("score lattice of %s x %s cells needs %s, limit is %s cells per layer",
		humanize.Comma(int64(e.Rows)), humanize.Comma(int64(e.Cols)),
		humanize.SI(need, "B"), humanize.Comma(int64(e.MaxCells)))
}

func (e *ResourceError) Unwrap() error {
	return ErrLatticeTooLarge
}

// CheckCells reports a *ResourceError when a lattice for sequences of length
// n and m would exceed maxCells per layer. maxCells <= 0 disables the check.
func CheckCells(n, m, maxCells int) error {
	rows, cols := n+1, m+1
	if maxCells > 0 && rows > maxCells/cols {
		return &ResourceError{Rows: rows, Cols: cols, MaxCells: maxCells}
	}
	return nil
}

// Lattice holds the three score layers of an affine alignment, each of
// (n+1) x (m+1) cells stored row-major.
type Lattice struct {
	Rows int
	Cols int
	M    []int
	Gx   []int
	Gy   []int
}

// NewLattice allocates a lattice for sequences of length n and m, with the
// local alignment boundary already in place. maxCells <= 0 disables the
// budget check.
func NewLattice(n, m, maxCells int) (*Lattice, error) {
	if err := CheckCells(n, m, maxCells); err != nil {
		return nil, err
	}

	rows, cols := n+1, m+1
	size := rows * cols
	l := &Lattice{
		Rows: rows,
		Cols: cols,
		M:    make([]int, size),
		Gx:   make([]int, size),
		Gy:   make([]int, size),
	}

	// Gap layers start unreachable everywhere; interior cells are overwritten
	// by the fill, so only row 0 and column 0 keep NegInf.
	for k := range l.Gx {
		l.Gx[k] = NegInf
		l.Gy[k] = NegInf
	}
	return l, nil
}

// Bytes returns the memory held by the three layers.
func (l *Lattice) Bytes() uint64 {
	return uint64(len(l.M)+len(l.Gx)+len(l.Gy)) * strconv.IntSize / 8
}

func (l *Lattice) at(i, j int) int {
	return i*l.Cols + j
}

// Cell returns the three layer values at (i, j).
func (l *Lattice) Cell(i, j int) (m, gx, gy int) {
	k := l.at(i, j)
	return l.M[k], l.Gx[k], l.Gy[k]
}

// diagonal returns the best predecessor score for a match column at (i, j)
// given substitution score s, and the layer it comes from. Ties go to
// M, then Gx, then Gy.
func (l *Lattice) diagonal(i, j, s int) (int, State) {
	k := l.at(i-1, j-1)
	best, state := l.M[k]+s, Match
	if v := l.Gx[k] + s; v > best {
		best, state = v, GapX
	}
	if v := l.Gy[k] + s; v > best {
		best, state = v, GapY
	}
	return best, state
}

// gapX returns the Gx value at (i, j) and the layer of its predecessor:
// Match when the gap opens here, GapX when it extends.
func (l *Lattice) gapX(i, j int, p Scoring) (int, State) {
	k := l.at(i, j-1)
	open := l.M[k] - p.OpenCost()
	extend := l.Gx[k] - p.GapExtend
	if open >= extend {
		return open, Match
	}
	return extend, GapX
}

// gapY is gapX along the sequence 1 axis.
func (l *Lattice) gapY(i, j int, p Scoring) (int, State) {
	k := l.at(i-1, j)
	open := l.M[k] - p.OpenCost()
	extend := l.Gy[k] - p.GapExtend
	if open >= extend {
		return open, Match
	}
	return extend, GapY
}

// best returns the highest of the three layers at (i, j), preferring
// M, then Gx, then Gy on ties.
func (l *Lattice) best(i, j int) (int, State) {
	k := l.at(i, j)
	v, state := l.M[k], Match
	if l.Gx[k] > v {
		v, state = l.Gx[k], GapX
	}
	if l.Gy[k] > v {
		v, state = l.Gy[k], GapY
	}
	return v, state
}
