package sequence

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("keeps residues verbatim", func(t *testing.T) {
		seq := New("acgtNNx")
		assert.Equal(t, "acgtNNx", seq.Residues)
		assert.Equal(t, 7, seq.Len())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		seq := New("")
		assert.True(t, seq.IsEmpty())
		assert.Equal(t, 0, seq.Len())
	})

	t.Run("with ID", func(t *testing.T) {
		seq := &Sequence{Residues: "ACGT", ID: "chr1"}
		assert.Equal(t, ">chr1\nACGT", seq.String())
	})
}

func TestUpper(t *testing.T) {
	seq := &Sequence{Residues: "acgtn", ID: "r1"}

	up := seq.Upper()
	assert.Equal(t, "ACGTN", up.Residues)
	assert.Equal(t, "r1", up.ID)
	assert.Equal(t, "acgtn", seq.Residues)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		residues string
		alphabet Alphabet
		wantErr  bool
	}{
		{"valid DNA", "ATGCATGC", DNA, false},
		{"DNA with ambiguous base", "ATGCNATGC", DNA, false},
		{"lowercase DNA rejected", "atgc", DNA, true},
		{"invalid base X", "ATGCXATGC", DNA, true},
		{"RNA", "AUGC", RNA, false},
		{"T in RNA", "ATGC", RNA, true},
		{"protein", "HEAGAWGHEE", Protein, false},
		{"protein with digit", "HEAG1", Protein, true},
		{"any accepts everything", "12 ab-?", Any, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.residues).Validate(tt.alphabet)
			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, &InvalidBaseError{}, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	t.Run("error position", func(t *testing.T) {
		err := Validate("ACZT", DNA)
		var baseErr *InvalidBaseError
		require.ErrorAs(t, err, &baseErr)
		assert.Equal(t, 2, baseErr.Position)
		assert.Equal(t, 'Z', baseErr.Found)
		assert.Contains(t, err.Error(), "invalid DNA residue 'Z' at position 2")

		var seqErr SequenceError
		assert.ErrorAs(t, err, &seqErr)
	})
}

func TestParseAlphabet(t *testing.T) {
	tests := []struct {
		in   string
		want Alphabet
	}{
		{"", Any},
		{"any", Any},
		{"DNA", DNA},
		{"rna", RNA},
		{"protein", Protein},
		{"aa", Protein},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlphabet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAlphabet("klingon")
	require.Error(t, err)
}

func TestSubsequence(t *testing.T) {
	seq := New("ATGCATGC")

	sub, err := seq.Subsequence(2, 5)
	require.NoError(t, err)
	assert.Equal(t, "GCA", sub.Residues)

	empty, err := seq.Subsequence(3, 3)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = seq.Subsequence(-1, 2)
	require.Error(t, err)
	_, err = seq.Subsequence(4, 2)
	require.Error(t, err)
	_, err = seq.Subsequence(0, 9)
	require.Error(t, err)
}

func TestBaseCounts(t *testing.T) {
	counts := New("AAttGGgCNx-").BaseCounts()

	assert.Equal(t, 2, counts.A)
	assert.Equal(t, 1, counts.C)
	assert.Equal(t, 3, counts.G)
	assert.Equal(t, 2, counts.T)
	assert.Equal(t, 1, counts.N)
	assert.Equal(t, 2, counts.Other)
	assert.Equal(t, 11, counts.Total())
}

func TestGCContent(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     float64
	}{
		{"all GC", "GCGCGC", 1.0},
		{"all AT", "ATATAT", 0.0},
		{"mixed 50%", "ATGC", 0.5},
		{"lowercase", "gcat", 0.5},
		{"empty", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, New(tt.sequence).GCContent(), 0.0001)
		})
	}
}

func TestParseFASTA(t *testing.T) {
	t.Run("single multi-line record", func(t *testing.T) {
		input := ">seq1 first test record\nGATT\nACA\n"
		seq, err := ParseFASTA(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, "seq1", seq.ID)
		assert.Equal(t, "GATTACA", seq.Residues)
	})

	t.Run("case is preserved", func(t *testing.T) {
		seq, err := ParseFASTA(strings.NewReader(">r\nacgtACGT\n"))
		require.NoError(t, err)
		assert.Equal(t, "acgtACGT", seq.Residues)
	})

	t.Run("no records", func(t *testing.T) {
		_, err := ParseFASTA(strings.NewReader(""))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoRecords))
	})

	t.Run("two records", func(t *testing.T) {
		_, err := ParseFASTA(strings.NewReader(">a\nACGT\n>b\nTTTT\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMultipleRecords))
	})
}

func TestParseFASTARecords(t *testing.T) {
	records, err := ParseFASTARecords(strings.NewReader(">a\nACGT\n>b\nTT\nTT\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "ACGT", records[0].Residues)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "TTTT", records[1].Residues)
}

func TestReadFASTA(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "one.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">query\nGCATGCU\n"), 0o644))

	seq, err := ReadFASTA(path)
	require.NoError(t, err)
	assert.Equal(t, "query", seq.ID)
	assert.Equal(t, "GCATGCU", seq.Residues)

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFASTA(filepath.Join(dir, "missing.fasta"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("record error names the file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.fasta")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))

		_, err := ReadFASTA(empty)
		var recErr *RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, empty, recErr.Source)
		assert.True(t, errors.Is(err, ErrNoRecords))
	})
}
