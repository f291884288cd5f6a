package sequence

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// ReadFASTA reads the single sequence record of a FASTA file.
func ReadFASTA(filename string) (*Sequence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	s, err := ParseFASTA(file)
	if err != nil {
		return nil, &RecordError{Source: filename, Err: err}
	}
	return s, nil
}

// ParseFASTA parses exactly one FASTA record from r. Zero records yield
// ErrNoRecords and more than one yield ErrMultipleRecords.
func ParseFASTA(r io.Reader) (*Sequence, error) {
	records, err := ParseFASTARecords(r)
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, ErrNoRecords
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("%w: %d records", ErrMultipleRecords, len(records))
	}
}

// ParseFASTARecords parses every FASTA record from r.
func ParseFASTARecords(r io.Reader) ([]*Sequence, error) {
	template := linear.NewSeq("", nil, alphabet.DNA)
	reader := fasta.NewReader(r, template)

	sequences := make([]*Sequence, 0)
	for {
		s, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(sequences)+1, err)
		}
		sequences = append(sequences, fromBiogo(s))
	}
	return sequences, nil
}

// fromBiogo copies the letters and annotation of a biogo sequence.
func fromBiogo(s seq.Sequence) *Sequence {
	residues := make([]byte, 0, s.Len())
	for i := s.Start(); i < s.End(); i++ {
		residues = append(residues, byte(s.At(i).L))
	}

	return &Sequence{
		Residues:    string(residues),
		ID:          s.Name(),
		Description: s.Description(),
	}
}
