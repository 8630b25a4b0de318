package genbank

import (
	"fmt"
	"strings"

	"github.com/vertti/genbankio/internal/wrap"
)

// Fixed layout of the flat-file format.
const (
	lineWidth     = 79 // maximum emitted line length
	headerIndent  = 12 // keyword field width of header sections
	kindIndent    = 5  // indentation of a feature kind token
	qualIndent    = 21 // indentation of locations and qualifiers
	locusNameMax  = 16 // LOCUS name column width
	locusLenWidth = 11 // LOCUS length column width, right-aligned
)

// parseLocus fills rec from the text of a LOCUS line (without the keyword
// field). The parse is token-based rather than strictly columnar, since
// column layouts drifted across GenBank releases; tokens that fit no field
// are ignored and the division stays "UNK".
func parseLocus(rest string, rec *Record) {
	rec.Division = "UNK"
	fields := strings.Fields(rest)

	// locate the "<length> bp|aa" pair; everything before it is the name
	lenIdx := -1
	for i := 0; i+1 < len(fields); i++ {
		if fields[i+1] != "bp" && fields[i+1] != "aa" {
			continue
		}
		if n, err := parseInt(fields[i]); err == nil {
			rec.Length = n
			lenIdx = i
			break
		}
	}
	if lenIdx < 0 {
		rec.Name = strings.Join(fields, " ")
		return
	}
	rec.Name = strings.Join(fields[:lenIdx], " ")

	topologySeen := false
	for _, tok := range fields[lenIdx+2:] {
		if tok == "linear" {
			topologySeen = true
			continue
		}
		if tok == "circular" {
			rec.Circular = true
			topologySeen = true
			continue
		}
		if strings.Count(tok, "-") == 2 {
			if date, err := ParseDate(tok); err == nil {
				rec.Date = date
				continue
			}
		}
		if !topologySeen && rec.MoleculeType == "" {
			rec.MoleculeType = tok
			continue
		}
		if isDivisionCode(tok) {
			rec.Division = tok
		}
	}
}

func isDivisionCode(tok string) bool {
	if len(tok) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if tok[i] < 'A' || tok[i] > 'Z' {
			return false
		}
	}
	return true
}

// appendLocus renders the fixed-width LOCUS line. The name field is
// validated against the write options: names wider than the column are an
// error unless truncation is enabled, and names containing whitespace are
// an error unless escaping is enabled.
func appendLocus(dst []byte, rec *Record, opts *WriteOptions) ([]byte, error) {
	name := rec.Name
	if strings.ContainsAny(name, " \t") {
		if !opts.EscapeLocus {
			return nil, &ValidationError{Field: "locus name", Msg: fmt.Sprintf("%q contains whitespace", name)}
		}
		name = escapeLocusName(name)
	}
	if len(name) > locusNameMax {
		if !opts.TruncateLocus {
			return nil, &ValidationError{
				Field: "locus name",
				Msg:   fmt.Sprintf("%q is longer than %d characters", name, locusNameMax),
			}
		}
		name = name[:locusNameMax]
	}

	length := rec.Length
	if length == 0 {
		length = len(rec.Sequence)
	}

	dst = append(dst, "LOCUS       "...)
	dst = appendPadded(dst, name, locusNameMax)
	dst = append(dst, ' ')
	dst = appendRightAligned(dst, fmt.Sprintf("%d", length), locusLenWidth)
	dst = append(dst, " bp "...)
	dst = appendPadded(dst, rec.MoleculeType, 8)
	dst = append(dst, "  "...)
	topology := "linear"
	if rec.Circular {
		topology = "circular"
	}
	dst = appendPadded(dst, topology, 8)
	dst = append(dst, ' ')
	division := rec.Division
	if division == "" {
		division = "UNK"
	}
	dst = appendPadded(dst, division, 3)
	if rec.Date != nil {
		dst = append(dst, ' ')
		dst = append(dst, rec.Date.String()...)
	}
	return trimTrailingSpaces(dst), nil
}

func escapeLocusName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return '_'
		}
		return r
	}, name)
}

func appendPadded(dst []byte, s string, width int) []byte {
	dst = append(dst, s...)
	for i := len(s); i < width; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

func appendRightAligned(dst []byte, s string, width int) []byte {
	for i := len(s); i < width; i++ {
		dst = append(dst, ' ')
	}
	return append(dst, s...)
}

func trimTrailingSpaces(dst []byte) []byte {
	for len(dst) > 0 && dst[len(dst)-1] == ' ' {
		dst = dst[:len(dst)-1]
	}
	return dst
}

// unwrapField joins the text of a keyword line with its continuation lines.
func unwrapField(rest string, continuations []string) string {
	if len(continuations) == 0 {
		return rest
	}
	fragments := make([]string, 0, 1+len(continuations))
	fragments = append(fragments, rest)
	for _, line := range continuations {
		fragments = append(fragments, strings.TrimSpace(line))
	}
	return wrap.Unwrap(fragments)
}

// parseSource splits a SOURCE section into the organism short name and the
// optional full ORGANISM classification.
func parseSource(rest string, continuations []string) *Source {
	src := &Source{}
	var nameFrags, organismFrags []string
	nameFrags = append(nameFrags, rest)
	inOrganism := false
	for _, line := range continuations {
		trimmed := strings.TrimSpace(line)
		if !inOrganism && strings.HasPrefix(trimmed, "ORGANISM") {
			inOrganism = true
			organismFrags = append(organismFrags, strings.TrimSpace(strings.TrimPrefix(trimmed, "ORGANISM")))
			continue
		}
		if inOrganism {
			organismFrags = append(organismFrags, trimmed)
		} else {
			nameFrags = append(nameFrags, trimmed)
		}
	}
	src.Name = wrap.Unwrap(nameFrags)
	src.Organism = wrap.Unwrap(organismFrags)
	return src
}

// appendHeaderField renders one header section: a 12-column keyword field
// followed by wrapped text, continuations indented to the same column.
func appendHeaderField(dst []byte, keyword, text string) []byte {
	lines := wrap.Wrap(text, lineWidth-headerIndent)
	for i, line := range lines {
		if i == 0 {
			dst = appendPadded(dst, keyword, headerIndent)
		} else {
			dst = appendPadded(dst, "", headerIndent)
		}
		dst = append(dst, line...)
		dst = append(dst, '\n')
	}
	return dst
}
