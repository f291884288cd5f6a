// Package handlers provides HTTP handlers for the affinealign API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aria-lang/affinealign/pkg/affine"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxBodyBytes bounds the size of a request body.
const DefaultMaxBodyBytes = 16 << 20

// AlignmentRequest represents an alignment request. Omitted scoring
// parameters fall back to the preset, or to the default DNA scoring.
type AlignmentRequest struct {
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
	// Preset names the base scoring scheme: "dna" or "blast".
	Preset    string `json:"preset,omitempty"`
	Match     *int   `json:"match,omitempty"`
	Mismatch  *int   `json:"mismatch,omitempty"`
	GapOpen   *int   `json:"gap_open,omitempty"`
	GapExtend *int   `json:"gap_extend,omitempty"`
	// Upper normalizes both sequences to upper case before aligning.
	Upper bool `json:"upper,omitempty"`
	// Alphabet validates both sequences: "dna", "rna", "protein" or "any".
	Alphabet string `json:"alphabet,omitempty"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Start1      int     `json:"start1"`
	End1        int     `json:"end1"`
	Start2      int     `json:"start2"`
	End2        int     `json:"end2"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
	GapOpenings int     `json:"gap_openings"`
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AlignmentHandlers serves alignment requests with a fixed lattice budget.
// The budget applies to /score as well, bounding the work of one request.
type AlignmentHandlers struct {
	MaxCells     int
	MaxBodyBytes int64
}

// NewAlignmentHandlers creates alignment handlers. maxCells <= 0 disables
// the lattice budget.
func NewAlignmentHandlers(maxCells int) *AlignmentHandlers {
	return &AlignmentHandlers{MaxCells: maxCells, MaxBodyBytes: DefaultMaxBodyBytes}
}

// Routes returns the alignment endpoints.
func (h *AlignmentHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/local", h.LocalAlign)
	r.Post("/score", h.Score)
	return r
}

// scoring merges the request parameters over the preset scoring.
func (req *AlignmentRequest) scoring() (affine.Scoring, error) {
	s := affine.DefaultScoring()
	if req.Preset != "" {
		var err error
		if s, err = affine.ScoringPreset(req.Preset); err != nil {
			return s, err
		}
	}
	if req.Match != nil {
		s.Match = *req.Match
	}
	if req.Mismatch != nil {
		s.Mismatch = *req.Mismatch
	}
	if req.GapOpen != nil {
		s.GapOpen = *req.GapOpen
	}
	if req.GapExtend != nil {
		s.GapExtend = *req.GapExtend
	}
	return s, s.Validate()
}

// sequences applies normalization and validation to the request sequences.
func (req *AlignmentRequest) sequences() (*affine.Sequence, *affine.Sequence, error) {
	seq1 := affine.NewSequence(req.Sequence1)
	seq2 := affine.NewSequence(req.Sequence2)
	if req.Upper {
		seq1, seq2 = seq1.Upper(), seq2.Upper()
	}

	alpha, err := affine.ParseAlphabet(req.Alphabet)
	if err != nil {
		return nil, nil, err
	}
	if err := seq1.Validate(alpha); err != nil {
		return nil, nil, fmt.Errorf("sequence1: %w", err)
	}
	if err := seq2.Validate(alpha); err != nil {
		return nil, nil, fmt.Errorf("sequence2: %w", err)
	}
	return seq1, seq2, nil
}

// decodeRequest reads and checks a request. On failure it writes the error
// response and returns false.
func (h *AlignmentHandlers) decodeRequest(w http.ResponseWriter, r *http.Request) (*parsedRequest, bool) {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	scoring, err := req.scoring()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	seq1, seq2, err := req.sequences()
	if err != nil {
		writeError(w, inputStatus(err), err.Error())
		return nil, false
	}

	if err := affine.CheckCells(seq1.Len(), seq2.Len(), h.MaxCells); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return nil, false
	}

	return &parsedRequest{seq1: seq1, seq2: seq2, scoring: scoring}, true
}

type parsedRequest struct {
	seq1, seq2 *affine.Sequence
	scoring    affine.Scoring
}

// inputStatus maps invalid sequence content to 422 and any other malformed
// input to 400.
func inputStatus(err error) int {
	var seqErr affine.SequenceError
	if errors.As(err, &seqErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// LocalAlign handles affine-gap local alignment requests.
func (h *AlignmentHandlers) LocalAlign(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	aligner := affine.NewAligner(req.scoring)
	aligner.MaxCells = h.MaxCells

	alignment, err := aligner.Align(req.seq1.Residues, req.seq2.Residues)
	if errors.Is(err, affine.ErrLatticeTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AlignmentResponse{
		AlignedSeq1: alignment.AlignedSeq1,
		AlignedSeq2: alignment.AlignedSeq2,
		Score:       alignment.Score,
		Start1:      alignment.Start1,
		End1:        alignment.End1,
		Start2:      alignment.Start2,
		End2:        alignment.End2,
		Identity:    alignment.Identity,
		CIGAR:       alignment.ToCIGAR(),
		Matches:     alignment.MatchCount(),
		Mismatches:  alignment.MismatchCount(),
		Gaps:        alignment.TotalGaps(),
		GapOpenings: alignment.GapOpenings(),
	})
}

// Score handles score-only requests, computed in linear memory.
func (h *AlignmentHandlers) Score(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		Score: affine.Score(req.seq1.Residues, req.seq2.Residues, req.scoring),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
