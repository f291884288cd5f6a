// Command affine-align computes affine-gap local alignments of FASTA records.
//
// Usage:
//
//	affine-align [command] [options]
//
// Commands:
//
//	align       Align the records of two FASTA files
//	info        Show composition of FASTA records
//	version     Show version information
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aria-lang/affinealign/pkg/affine"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "align":
		err = alignCmd(args[1:], stdin, stdout, stderr)
	case "info":
		err = infoCmd(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, affine.Info())
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `affinealign - Affine-Gap Local Sequence Alignment

Usage:
  affine-align <command> [options]

Commands:
  align     Align the records of two FASTA files
  info      Show composition of FASTA records
  version   Show version information
  help      Show this help message

Use "affine-align <command> -h" for more information about a command.`)
}

// scoringFlags holds the four scoring flags and remembers which were set.
type scoringFlags struct {
	match, mismatch, gapOpen, gapExtend int
	preset                              string
	set                                 map[string]bool
}

func (sf *scoringFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&sf.match, "match", 0, "Match score (prompted if not set)")
	fs.IntVar(&sf.mismatch, "mismatch", 0, "Mismatch score (prompted if not set)")
	fs.IntVar(&sf.gapOpen, "gap-open", 0, "Gap opening penalty (prompted if not set)")
	fs.IntVar(&sf.gapExtend, "gap-extend", 0, "Gap extension penalty (prompted if not set)")
	fs.StringVar(&sf.preset, "preset", "", "Take unset scoring flags from a preset (dna or blast) instead of prompting")
}

// resolve returns the scoring parameters. Those not given as flags come from
// the preset when one is named, and are prompted for on in otherwise.
func (sf *scoringFlags) resolve(fs *flag.FlagSet, in *bufio.Scanner, out io.Writer) (affine.Scoring, error) {
	sf.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { sf.set[f.Name] = true })

	var base affine.Scoring
	if sf.preset != "" {
		var err error
		if base, err = affine.ScoringPreset(sf.preset); err != nil {
			return affine.Scoring{}, err
		}
	}

	params := []struct {
		flag   string
		prompt string
		dst    *int
		preset int
	}{
		{"match", "Match score: ", &sf.match, base.Match},
		{"mismatch", "Mismatch score: ", &sf.mismatch, base.Mismatch},
		{"gap-open", "Gap Opening penalty: ", &sf.gapOpen, base.GapOpen},
		{"gap-extend", "Gap Extension penalty: ", &sf.gapExtend, base.GapExtend},
	}

	bannerShown := false
	for _, p := range params {
		if sf.set[p.flag] {
			continue
		}
		if sf.preset != "" {
			*p.dst = p.preset
			continue
		}
		if !bannerShown {
			printBanner(out, "SCORING MATRIX INPUT")
			fmt.Fprint(out, "Please enter the scoring parameters:\n\n")
			bannerShown = true
		}

		v, err := promptInt(in, out, p.prompt)
		if err != nil {
			return affine.Scoring{}, fmt.Errorf("reading %s: %w", p.flag, err)
		}
		*p.dst = v
	}

	scoring := affine.NewScoring(sf.match, sf.mismatch, sf.gapOpen, sf.gapExtend)
	if err := scoring.Validate(); err != nil {
		return affine.Scoring{}, err
	}
	return scoring, nil
}

func promptInt(in *bufio.Scanner, out io.Writer, prompt string) (int, error) {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}

	text := strings.TrimSpace(in.Text())
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", text)
	}
	return v, nil
}

func printBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", 30)
	fmt.Fprintf(w, "\n%s\n   %s\n%s\n", rule, title, rule)
}

// loadSequence reads one FASTA record and applies the requested
// normalization and validation.
func loadSequence(path string, upper bool, alpha affine.Alphabet) (*affine.Sequence, error) {
	seq, err := affine.ReadFASTA(path)
	if err != nil {
		return nil, err
	}
	if upper {
		seq = seq.Upper()
	}
	if err := seq.Validate(alpha); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

func alignCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("align", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: affine-align align [options] <seq1.fasta> <seq2.fasta>")
		fs.PrintDefaults()
	}

	var sf scoringFlags
	sf.register(fs)
	upper := fs.Bool("upper", false, "Upper-case residues before aligning")
	alphaName := fs.String("alphabet", "any", "Validate residues: any, dna, rna or protein")
	scoreOnly := fs.Bool("score-only", false, "Report only the score, using linear memory")
	pretty := fs.Bool("pretty", false, "Print a match line, identity and CIGAR")
	maxCells := fs.Int("max-cells", affine.DefaultMaxCells, "Lattice cell budget per layer (0 disables)")
	verbose := fs.Bool("v", false, "Log input sizes and timing to stderr")
	cpuProfile := fs.Bool("cpuprofile", false, "Write cpu.pprof to the current directory")
	memProfile := fs.Bool("memprofile", false, "Write mem.pprof to the current directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("two FASTA files are required")
	}

	// go tool pprof -http=:8080 cpu.pprof
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *verbose {
		logger.SetOutput(stderr)
	}

	alpha, err := affine.ParseAlphabet(*alphaName)
	if err != nil {
		return err
	}

	seq1, err := loadSequence(fs.Arg(0), *upper, alpha)
	if err != nil {
		return fmt.Errorf("reading sequence 1: %w", err)
	}
	seq2, err := loadSequence(fs.Arg(1), *upper, alpha)
	if err != nil {
		return fmt.Errorf("reading sequence 2: %w", err)
	}
	logger.Printf("sequence 1: %s (%s residues)", seq1.ID, humanize.Comma(int64(seq1.Len())))
	logger.Printf("sequence 2: %s (%s residues)", seq2.ID, humanize.Comma(int64(seq2.Len())))

	scoring, err := sf.resolve(fs, bufio.NewScanner(stdin), stdout)
	if err != nil {
		return err
	}
	logger.Printf("scoring: %s", scoring)

	printBanner(stdout, "COMPUTING ALIGNMENT...")
	start := time.Now()

	if *scoreOnly {
		score := affine.Score(seq1.Residues, seq2.Residues, scoring)
		logger.Printf("score computed in %s", time.Since(start))
		fmt.Fprintf(stdout, "\nAlignment Score: %d\n", score)
		return nil
	}

	aligner := affine.NewAligner(scoring)
	aligner.MaxCells = *maxCells

	alignment, err := aligner.Align(seq1.Residues, seq2.Residues)
	if err != nil {
		return fmt.Errorf("aligning sequences: %w", err)
	}
	cells := uint64(seq1.Len()+1) * uint64(seq2.Len()+1)
	logger.Printf("lattice %s, aligned in %s",
		humanize.Bytes(cells*3*strconv.IntSize/8), time.Since(start))

	fmt.Fprint(stdout, "\n===== BEST LOCAL ALIGNMENT =====\n\n")
	if *pretty {
		return printPretty(stdout, alignment, seq1, seq2, logger)
	}

	fmt.Fprintln(stdout, alignment.AlignedSeq1)
	fmt.Fprintln(stdout, alignment.AlignedSeq2)
	fmt.Fprintf(stdout, "\nAlignment Score: %d\n", alignment.Score)
	return nil
}

// printPretty writes the formatted alignment followed by the aligned region
// of each input in 1-based inclusive coordinates.
func printPretty(w io.Writer, a *affine.Alignment, seq1, seq2 *affine.Sequence, logger *log.Logger) error {
	if a.IsEmpty() {
		fmt.Fprintln(w, "No similarity found")
		fmt.Fprintf(w, "Score: %d\n", a.Score)
		return nil
	}

	fmt.Fprintln(w, a.Format())
	region1, err := seq1.Subsequence(a.Start1, a.End1)
	if err != nil {
		return err
	}
	region2, err := seq2.Subsequence(a.Start2, a.End2)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Region 1: %d-%d %s\n", a.Start1+1, a.End1, region1.Residues)
	fmt.Fprintf(w, "Region 2: %d-%d %s\n", a.Start2+1, a.End2, region2.Residues)

	logger.Printf("%s", affine.AlignmentStatistics(a, seq1, seq2))
	return nil
}

func infoCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: affine-align info <file.fasta>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("at least one FASTA file is required")
	}

	for _, path := range fs.Args() {
		seq, err := affine.ReadFASTA(path)
		if err != nil {
			return err
		}

		st := affine.SequenceStatistics(seq)
		fmt.Fprintf(stdout, "%s:\n", path)
		if st.ID != "" {
			fmt.Fprintf(stdout, "  ID: %s\n", st.ID)
		}
		fmt.Fprintf(stdout, "  Length: %s\n", humanize.Comma(int64(st.Length)))
		fmt.Fprintf(stdout, "  GC Content: %.2f%%\n", st.GCContent*100)
		fmt.Fprintf(stdout, "  AT Content: %.2f%%\n", st.ATContent*100)
		fmt.Fprintf(stdout, "  Base Counts: A=%d, C=%d, G=%d, T=%d, N=%d, other=%d\n",
			st.ACount, st.CCount, st.GCount, st.TCount, st.NCount, st.OtherCount)
	}
	return nil
}
