package genbank

import (
	"strconv"
	"strings"
)

// Layout of ORIGIN sequence lines: 60 residues per line in groups of 10,
// prefixed with a right-aligned 1-based position.
const (
	seqLineResidues = 60
	seqGroupSize    = 10
	seqPosWidth     = 9
)

// parseOrigin collects the residues of an ORIGIN block into one contiguous
// buffer, dropping position numbers and whitespace grouping. Residues are
// lowercased, matching the convention of the format.
func parseOrigin(lines []string) []byte {
	seq := make([]byte, 0, len(lines)*seqLineResidues)
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case c == ' ' || c == '\t' || c >= '0' && c <= '9':
				// position prefix or group separator
			case c >= 'A' && c <= 'Z':
				seq = append(seq, c+'a'-'A')
			default:
				seq = append(seq, c)
			}
		}
	}
	return seq
}

// appendOrigin renders the ORIGIN block of an inline sequence.
func appendOrigin(dst []byte, seq []byte) []byte {
	dst = append(dst, "ORIGIN\n"...)
	for i := 0; i < len(seq); i += seqLineResidues {
		dst = appendRightAligned(dst, strconv.Itoa(i+1), seqPosWidth)
		end := min(i+seqLineResidues, len(seq))
		for j := i; j < end; j += seqGroupSize {
			dst = append(dst, ' ')
			dst = append(dst, seq[j:min(j+seqGroupSize, end)]...)
		}
		dst = append(dst, '\n')
	}
	return dst
}

// appendContig renders the CONTIG line of an assembly-reference record,
// wrapping the location expression at commas.
func appendContig(dst []byte, contig Location) []byte {
	for i, line := range wrapLocation(FormatLocation(contig), lineWidth-headerIndent) {
		if i == 0 {
			dst = appendPadded(dst, "CONTIG", headerIndent)
		} else {
			dst = appendPadded(dst, "", headerIndent)
		}
		dst = append(dst, line...)
		dst = append(dst, '\n')
	}
	return dst
}

// parseContig parses the location expression of a CONTIG section,
// concatenating continuation lines.
func parseContig(rest string, continuations []string) (Location, error) {
	frags := make([]string, 0, 1+len(continuations))
	frags = append(frags, rest)
	for _, line := range continuations {
		frags = append(frags, strings.TrimSpace(line))
	}
	return ParseLocation(strings.Join(frags, ""))
}
