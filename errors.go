package genbank

import "fmt"

// FormatError reports a structurally malformed record: a missing mandatory
// LOCUS line, a section keyword appearing out of order, or an unparseable
// fixed-width field.
type FormatError struct {
	Line int // 1-based line number in the input, 0 if unknown
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("genbank: line %d: %s", e.Line, e.Msg)
	}
	return "genbank: " + e.Msg
}

// LocationSyntaxError reports a malformed feature location expression.
type LocationSyntaxError struct {
	Text string // the location expression being parsed
	Msg  string
}

func (e *LocationSyntaxError) Error() string {
	return fmt.Sprintf("genbank: invalid location %q: %s", e.Text, e.Msg)
}

// TruncatedRecordError reports input that ended before the current record's
// terminating "//" line.
type TruncatedRecordError struct {
	Line int // line number where input ended
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("genbank: line %d: input ended mid-record (missing //)", e.Line)
}

// LengthMismatchError reports a record whose declared LOCUS length disagrees
// with the number of residues parsed from its ORIGIN block.
type LengthMismatchError struct {
	Name     string // locus name, may be empty
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("genbank: record %q declares %d residues but sequence has %d",
		e.Name, e.Declared, e.Actual)
}

// ValidationError reports a record that cannot be serialized as-is, such as a
// locus name that is too long or contains whitespace while the corresponding
// write option is disabled.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("genbank: invalid %s: %s", e.Field, e.Msg)
}
