package genbank

import (
	"fmt"
	"strings"
)

// Record is a single GenBank entry.
//
// A zero Record is valid; Division defaults to "UNK" on records produced by
// the Reader. Length of 0 means the LOCUS line carried no length, in which
// case the writer falls back to len(Sequence).
type Record struct {
	Name         string // locus name, "" if absent
	Length       int    // declared residue count, 0 if absent
	MoleculeType string // "DNA", "mRNA", ...; "" if absent
	Division     string // GenBank division code, "UNK" when unknown
	Definition   string
	Accession    string
	Version      string
	DBLink       string
	Keywords     string
	Circular     bool
	Date         *Date
	Source       *Source
	Sequence     []byte      // inline residues, lowercase when parsed
	Contig       Location    // set instead of Sequence for contig records
	Features     []Feature   // insertion order significant
	References   []Reference // insertion order significant
	Comments     []string
}

// Source is the organism annotation of a Record.
type Source struct {
	Name     string // short organism name from the SOURCE line
	Organism string // full taxonomic organism string, "" if absent
}

// Feature is an annotated span with a location and ordered qualifiers.
// Repeated qualifier keys are allowed and their order is preserved.
type Feature struct {
	Kind       string // "CDS", "gene", ...
	Location   Location
	Qualifiers []Qualifier
}

// Qualifier is a single /key=value annotation of a Feature.
// A nil Value marks a flag-only qualifier such as /pseudo.
type Qualifier struct {
	Key   string
	Value *string
}

// NewQualifier returns a qualifier carrying a value.
func NewQualifier(key, value string) Qualifier {
	return Qualifier{Key: key, Value: &value}
}

// NewFlag returns a value-less qualifier.
func NewFlag(key string) Qualifier {
	return Qualifier{Key: key}
}

// Reference is one REFERENCE block of a Record.
type Reference struct {
	Description string // rest of the REFERENCE line, e.g. "1  (bases 1 to 5028)"
	Title       string
	Authors     string
	Consortium  string
	Journal     string
	PubMed      string
	Remark      string
}

// Date is a GenBank submission date, formatted as DD-MMM-YYYY.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int
}

var monthNames = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// ParseDate parses a GenBank date such as "01-JAN-2000".
// The month name is matched case-insensitively.
func ParseDate(s string) (*Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil, fmt.Errorf("genbank: invalid date %q", s)
	}
	day, err := parseInt(parts[0])
	if err != nil || day < 1 || day > 31 {
		return nil, fmt.Errorf("genbank: invalid day in date %q", s)
	}
	month := 0
	upper := strings.ToUpper(parts[1])
	for i, name := range monthNames {
		if upper == name {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return nil, fmt.Errorf("genbank: invalid month in date %q", s)
	}
	year, err := parseInt(parts[2])
	if err != nil || year < 1 {
		return nil, fmt.Errorf("genbank: invalid year in date %q", s)
	}
	return &Date{Year: year, Month: month, Day: day}, nil
}

// String formats the date in GenBank form, e.g. "01-JAN-2000".
func (d *Date) String() string {
	return fmt.Sprintf("%02d-%s-%04d", d.Day, monthNames[d.Month-1], d.Year)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
