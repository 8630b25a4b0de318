package genbank

import (
	"bufio"
	"io"
	"strings"
)

// lineScanner reads newline-terminated lines with one line of lookahead,
// tracking line numbers for error reporting. CR from CRLF terminators is
// stripped.
type lineScanner struct {
	reader *bufio.Reader
	buf    []byte // reusable buffer for reading lines
	n      int    // number of the last line returned by next

	peeked  bool
	peekVal string
	peekErr error
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{
		reader: bufio.NewReaderSize(r, 1<<20), // 1MB buffer
		buf:    make([]byte, 0, 512),
	}
}

// next returns the next line without its terminator. It returns io.EOF
// after the last line.
func (s *lineScanner) next() (string, error) {
	if s.peeked {
		s.peeked = false
		if s.peekErr == nil {
			s.n++
		}
		return s.peekVal, s.peekErr
	}
	return s.read(true)
}

// peek returns the upcoming line without consuming it.
func (s *lineScanner) peek() (string, error) {
	if !s.peeked {
		s.peekVal, s.peekErr = s.read(false)
		s.peeked = true
	}
	return s.peekVal, s.peekErr
}

func (s *lineScanner) read(count bool) (string, error) {
	s.buf = s.buf[:0]

	for {
		segment, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			if err == io.EOF && len(s.buf) > 0 {
				break
			}
			return "", err
		}
		s.buf = append(s.buf, segment...)
		if !isPrefix {
			break
		}
	}

	// Trim any trailing CR (for Windows line endings)
	if n := len(s.buf); n > 0 && s.buf[n-1] == '\r' {
		s.buf = s.buf[:n-1]
	}

	if count {
		s.n++
	}
	return string(s.buf), nil
}

// line reports the number of the last line handed out, 1-based.
func (s *lineScanner) line() int {
	return s.n
}

// isContinuation reports whether a raw line belongs to the section opened
// by the previous top-level keyword line.
func isContinuation(line string) bool {
	return line == "" || line[0] == ' ' || line[0] == '\t'
}

// sectionKeyword extracts the leading keyword of a top-level line, e.g.
// "LOCUS" or "FEATURES". The line must not be a continuation line.
func sectionKeyword(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i]
	}
	return line
}

// restOf returns the text of a keyword line after the 12-column keyword
// field, trimmed of the field padding.
func restOf(line string) string {
	if len(line) > 12 {
		return strings.TrimLeft(line[12:], " ")
	}
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return strings.TrimLeft(line[i:], " ")
	}
	return ""
}
