package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecords is returned when a FASTA input holds no record.
	ErrNoRecords = errors.New("no sequence record found")
	// ErrMultipleRecords is returned when a FASTA input holds more than one record.
	ErrMultipleRecords = errors.New("more than one sequence record found")
)

// SequenceError marks errors caused by the content of a sequence input
// rather than by the caller.
type SequenceError interface {
	error
	IsSequenceError()
}

// InvalidBaseError is returned when a residue is outside the alphabet.
type InvalidBaseError struct {
	Position int
	Found    rune
	Alphabet Alphabet
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid %s residue '%c' at position %d", e.Alphabet, e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// RecordError wraps a FASTA reading failure with its source.
type RecordError struct {
	Source string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func (e *RecordError) IsSequenceError() {}

// Valid residues per alphabet
var (
	ValidDNABases     = runeSet("ACGTN")
	ValidRNABases     = runeSet("ACGUN")
	ValidProteinBases = runeSet("ACDEFGHIKLMNPQRSTVWYBZX*")
)

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

// Validate checks that residues only contain symbols of the alphabet.
// Validation is case-sensitive; normalize first to accept lowercase.
func Validate(residues string, alpha Alphabet) error {
	var valid map[rune]bool
	switch alpha {
	case DNA:
		valid = ValidDNABases
	case RNA:
		valid = ValidRNABases
	case Protein:
		valid = ValidProteinBases
	default:
		return nil
	}

	pos := 0
	for _, r := range residues {
		if !valid[r] {
			return &InvalidBaseError{Position: pos, Found: r, Alphabet: alpha}
		}
		pos++
	}
	return nil
}
