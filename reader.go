package genbank

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseState tracks where the per-record state machine is within the
// section order of a record. Sections may repeat within a state but must
// never move backwards.
type parseState int

const (
	stateAwaitLocus parseState = iota
	stateHeader
	stateReferences
	stateFeatures
	stateSequence
)

var stateNames = map[parseState]string{
	stateAwaitLocus: "start of record",
	stateHeader:     "header",
	stateReferences: "references",
	stateFeatures:   "feature table",
	stateSequence:   "sequence",
}

// sectionStates is the transition table of the record state machine: each
// recognized top-level keyword maps to the machine state it belongs to.
// Keywords missing from the table are skipped for forward compatibility.
var sectionStates = map[string]parseState{
	"LOCUS":      stateHeader,
	"DEFINITION": stateHeader,
	"ACCESSION":  stateHeader,
	"VERSION":    stateHeader,
	"DBLINK":     stateHeader,
	"KEYWORDS":   stateHeader,
	"SOURCE":     stateHeader,
	"REFERENCE":  stateReferences,
	"COMMENT":    stateReferences, // comments follow the reference blocks
	"FEATURES":   stateFeatures,
	"BASE":       stateSequence, // legacy BASE COUNT, content skipped
	"ORIGIN":     stateSequence,
	"CONTIG":     stateSequence,
}

// Reader is a forward-only streaming reader of GenBank records. It keeps
// at most one record's worth of parsed state resident; records it yields
// hold no references into reader internals. A Reader is not safe for
// concurrent use.
type Reader struct {
	s   *lineScanner
	err error // sticky error, parsing stops after the first failure
}

// NewReader returns a Reader consuming GenBank text from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: newLineScanner(r)}
}

// Next reads and returns the next record. It returns io.EOF when the input
// is cleanly exhausted, and a TruncatedRecordError when the input ends in
// the middle of a record.
func (r *Reader) Next() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, err := r.next()
	if err != nil && !errors.Is(err, io.EOF) {
		r.err = err
	}
	return rec, err
}

func (r *Reader) next() (*Record, error) {
	// skip blank separator lines between records
	for {
		line, err := r.s.peek()
		if err != nil {
			return nil, r.wrapIO(err)
		}
		if strings.TrimSpace(line) != "" {
			break
		}
		if _, err := r.s.next(); err != nil {
			return nil, r.wrapIO(err)
		}
	}

	rec := &Record{Division: "UNK"}
	state := stateAwaitLocus

	for {
		line, err := r.s.next()
		if errors.Is(err, io.EOF) {
			return nil, &TruncatedRecordError{Line: r.s.line()}
		}
		if err != nil {
			return nil, r.wrapIO(err)
		}

		if strings.TrimSpace(line) == "//" {
			if state == stateAwaitLocus {
				return nil, &FormatError{Line: r.s.line(), Msg: "record must begin with LOCUS"}
			}
			return r.finish(rec)
		}
		if isContinuation(line) {
			if state == stateAwaitLocus {
				return nil, &FormatError{Line: r.s.line(), Msg: "record must begin with LOCUS"}
			}
			// stray continuation after a skipped section
			continue
		}

		keyword := sectionKeyword(line)
		lineNum := r.s.line()
		continuations, err := r.collectContinuations()
		if err != nil {
			return nil, err
		}

		if state == stateAwaitLocus && keyword != "LOCUS" {
			return nil, &FormatError{Line: lineNum, Msg: "record must begin with LOCUS, found " + keyword}
		}
		next, known := sectionStates[keyword]
		if !known {
			continue // unrecognized section, skipped by policy
		}
		switch {
		case keyword == "LOCUS" && state != stateAwaitLocus:
			return nil, &FormatError{Line: lineNum, Msg: "unexpected second LOCUS inside record"}
		case next < state:
			return nil, &FormatError{
				Line: lineNum,
				Msg:  fmt.Sprintf("unexpected %s section in %s", keyword, stateNames[state]),
			}
		}
		state = next

		if err := r.section(rec, keyword, restOf(line), continuations, lineNum); err != nil {
			return nil, err
		}
	}
}

// collectContinuations consumes the indented lines belonging to the
// section that was just opened.
func (r *Reader) collectContinuations() ([]string, error) {
	var lines []string
	for {
		line, err := r.s.peek()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, r.wrapIO(err)
		}
		if !isContinuation(line) || strings.TrimSpace(line) == "//" {
			return lines, nil
		}
		if _, err := r.s.next(); err != nil {
			return nil, r.wrapIO(err)
		}
		lines = append(lines, line)
	}
}

func (r *Reader) section(rec *Record, keyword, rest string, continuations []string, lineNum int) error {
	switch keyword {
	case "LOCUS":
		parseLocus(rest, rec)
	case "DEFINITION":
		rec.Definition = unwrapField(rest, continuations)
	case "ACCESSION":
		rec.Accession = unwrapField(rest, continuations)
	case "VERSION":
		rec.Version = unwrapField(rest, continuations)
	case "DBLINK":
		rec.DBLink = unwrapField(rest, continuations)
	case "KEYWORDS":
		rec.Keywords = unwrapField(rest, continuations)
	case "SOURCE":
		rec.Source = parseSource(rest, continuations)
	case "COMMENT":
		rec.Comments = append(rec.Comments, unwrapField(rest, continuations))
	case "REFERENCE":
		rec.References = append(rec.References, parseReference(rest, continuations))
	case "FEATURES":
		features, err := parseFeatures(continuations, lineNum)
		if err != nil {
			return err
		}
		rec.Features = features
	case "ORIGIN":
		rec.Sequence = parseOrigin(continuations)
	case "CONTIG":
		contig, err := parseContig(rest, continuations)
		if err != nil {
			return err
		}
		rec.Contig = contig
	case "BASE":
		// legacy BASE COUNT carries nothing the sequence doesn't
	}
	return nil
}

// finish validates a completed record before yielding it.
func (r *Reader) finish(rec *Record) (*Record, error) {
	if rec.Length > 0 && len(rec.Sequence) > 0 && rec.Length != len(rec.Sequence) {
		return nil, &LengthMismatchError{
			Name:     rec.Name,
			Declared: rec.Length,
			Actual:   len(rec.Sequence),
		}
	}
	return rec, nil
}

func (r *Reader) wrapIO(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("genbank: line %d: %w", r.s.line(), err)
}
