package genbank

import (
	"fmt"
	"strings"
)

// Strand is the orientation of a location relative to the record sequence.
type Strand int8

const (
	StrandForward Strand = iota // '+'
	StrandReverse               // '-'
)

// String returns "+" or "-".
func (s Strand) String() string {
	if s == StrandReverse {
		return "-"
	}
	return "+"
}

// Location is a feature coordinate expression. It is a closed set of
// variants: Range, Between, Complement, Join, Order, Bond, OneOf and
// External. Locations nest arbitrarily and form a strict tree.
type Location interface {
	// Bounds returns the outermost positions covered by the location.
	// Composite locations report the min/max over their members; a
	// Complement reports its inner bounds swapped to reflect reading
	// direction.
	Bounds() (start, end int)
	// Strand reports the derived orientation. A Complement of a
	// Complement cancels back to the inner strand.
	Strand() Strand
	// String returns the canonical GenBank text of the location.
	String() string

	isLocation()
}

// Range spans consecutive positions, 1-based and inclusive on both ends.
// Before and After mark partial bounds ('<' and '>').
type Range struct {
	Start  int
	End    int
	Before bool
	After  bool
}

// Between is a zero-width site between two consecutive positions (N^M).
type Between struct {
	Start int
	End   int
}

// Complement places its inner location on the opposite strand.
type Complement struct {
	Location Location
}

// Join is a set of locations forming one continuous span once joined.
type Join struct {
	Locations []Location
}

// Order is a set of disjoint locations in the given order.
type Order struct {
	Locations []Location
}

// Bond is a cross-link (e.g. a disulfide bond) between locations.
type Bond struct {
	Locations []Location
}

// OneOf is a set of alternative locations, exactly one of which applies.
type OneOf struct {
	Locations []Location
}

// External points at coordinates on another record. A nil inner Location
// references the external record as a whole.
type External struct {
	Accession string
	Location  Location
}

func (*Range) isLocation()      {}
func (*Between) isLocation()    {}
func (*Complement) isLocation() {}
func (*Join) isLocation()       {}
func (*Order) isLocation()      {}
func (*Bond) isLocation()       {}
func (*OneOf) isLocation()      {}
func (*External) isLocation()   {}

func (l *Range) Bounds() (int, int)   { return l.Start, l.End }
func (l *Between) Bounds() (int, int) { return l.Start, l.End }

func (l *Complement) Bounds() (int, int) {
	start, end := l.Location.Bounds()
	return end, start
}

func boundsOver(locs []Location) (int, int) {
	if len(locs) == 0 {
		return 0, 0
	}
	min, max := locs[0].Bounds()
	if min > max {
		min, max = max, min
	}
	for _, loc := range locs[1:] {
		s, e := loc.Bounds()
		if s > e {
			s, e = e, s
		}
		if s < min {
			min = s
		}
		if e > max {
			max = e
		}
	}
	return min, max
}

func (l *Join) Bounds() (int, int)  { return boundsOver(l.Locations) }
func (l *Order) Bounds() (int, int) { return boundsOver(l.Locations) }
func (l *Bond) Bounds() (int, int)  { return boundsOver(l.Locations) }
func (l *OneOf) Bounds() (int, int) { return boundsOver(l.Locations) }

func (l *External) Bounds() (int, int) {
	if l.Location == nil {
		return 0, 0
	}
	return l.Location.Bounds()
}

func (l *Range) Strand() Strand   { return StrandForward }
func (l *Between) Strand() Strand { return StrandForward }

func (l *Complement) Strand() Strand {
	if l.Location.Strand() == StrandReverse {
		return StrandForward
	}
	return StrandReverse
}

func (l *Join) Strand() Strand  { return StrandForward }
func (l *Order) Strand() Strand { return StrandForward }
func (l *Bond) Strand() Strand  { return StrandForward }
func (l *OneOf) Strand() Strand { return StrandForward }

func (l *External) Strand() Strand {
	if l.Location == nil {
		return StrandForward
	}
	return l.Location.Strand()
}

func (l *Range) String() string      { return FormatLocation(l) }
func (l *Between) String() string    { return FormatLocation(l) }
func (l *Complement) String() string { return FormatLocation(l) }
func (l *Join) String() string       { return FormatLocation(l) }
func (l *Order) String() string      { return FormatLocation(l) }
func (l *Bond) String() string       { return FormatLocation(l) }
func (l *OneOf) String() string      { return FormatLocation(l) }
func (l *External) String() string   { return FormatLocation(l) }

// FormatLocation renders a location tree in canonical GenBank form. It is
// total over well-formed trees, and its output re-parses to an identical
// tree.
func FormatLocation(loc Location) string {
	return string(appendLocation(make([]byte, 0, 32), loc))
}

func appendLocation(dst []byte, loc Location) []byte {
	switch l := loc.(type) {
	case *Range:
		if l.Start == l.End && !(l.Before && l.After) {
			if l.Before {
				dst = append(dst, '<')
			} else if l.After {
				dst = append(dst, '>')
			}
			return appendInt(dst, l.Start)
		}
		if l.Before {
			dst = append(dst, '<')
		}
		dst = appendInt(dst, l.Start)
		dst = append(dst, ".."...)
		if l.After {
			dst = append(dst, '>')
		}
		return appendInt(dst, l.End)
	case *Between:
		dst = appendInt(dst, l.Start)
		dst = append(dst, '^')
		return appendInt(dst, l.End)
	case *Complement:
		dst = append(dst, "complement("...)
		dst = appendLocation(dst, l.Location)
		return append(dst, ')')
	case *Join:
		return appendLocationList(dst, "join", l.Locations)
	case *Order:
		return appendLocationList(dst, "order", l.Locations)
	case *Bond:
		return appendLocationList(dst, "bond", l.Locations)
	case *OneOf:
		return appendLocationList(dst, "one-of", l.Locations)
	case *External:
		dst = append(dst, l.Accession...)
		if l.Location != nil {
			dst = append(dst, ':')
			dst = appendLocation(dst, l.Location)
		}
		return dst
	default:
		panic(fmt.Sprintf("genbank: unknown location type %T", loc))
	}
}

func appendLocationList(dst []byte, verb string, locs []Location) []byte {
	dst = append(dst, verb...)
	dst = append(dst, '(')
	for i, loc := range locs {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendLocation(dst, loc)
	}
	return append(dst, ')')
}

func appendInt(dst []byte, n int) []byte {
	return fmt.Appendf(dst, "%d", n)
}

// ParseLocation parses a GenBank location expression such as
// "complement(join(<1..206,300^301,J00194.1:1..150))". Whitespace is
// ignored. A LocationSyntaxError is returned for malformed input.
func ParseLocation(text string) (Location, error) {
	p := locParser{text: text, s: stripSpace(text)}
	loc, err := p.parseOne()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected trailing %q", p.s[p.pos:])
	}
	return loc, nil
}

type locParser struct {
	text string // original input, for error messages
	s    string // input with whitespace removed
	pos  int
}

func (p *locParser) errorf(format string, args ...any) error {
	return &LocationSyntaxError{Text: p.text, Msg: fmt.Sprintf(format, args...)}
}

func (p *locParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *locParser) parseOne() (Location, error) {
	c := p.peek()
	switch {
	case c == '<' || c == '>' || isDigit(c):
		return p.parseSimple()
	case isNameStart(c):
		return p.parseNamed()
	case c == 0:
		return nil, p.errorf("empty location")
	default:
		return nil, p.errorf("unexpected character %q", string(c))
	}
}

// parseNamed handles verb groups like join(...) and external references
// like J00194.1:1..150 or bare accessions.
func (p *locParser) parseNamed() (Location, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	name := p.s[start:p.pos]

	if p.peek() == '(' {
		locs, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		switch name {
		case "complement":
			if len(locs) != 1 {
				return nil, p.errorf("complement takes exactly one location, got %d", len(locs))
			}
			return &Complement{Location: locs[0]}, nil
		case "join":
			return &Join{Locations: locs}, nil
		case "order":
			return &Order{Locations: locs}, nil
		case "bond":
			return &Bond{Locations: locs}, nil
		case "one-of":
			return &OneOf{Locations: locs}, nil
		default:
			return nil, p.errorf("unknown location verb %q", name)
		}
	}

	// not a verb: an accession, possibly qualified with inner coordinates
	if p.peek() == ':' {
		p.pos++
		inner, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		return &External{Accession: name, Location: inner}, nil
	}
	return &External{Accession: name}, nil
}

func (p *locParser) parseGroup() ([]Location, error) {
	p.pos++ // consume '('
	var locs []Location
	for {
		loc, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return locs, nil
		default:
			return nil, p.errorf("unterminated grouping")
		}
	}
}

// parseSimple handles N, N..M, N^M and their fuzzy-bound forms.
func (p *locParser) parseSimple() (Location, error) {
	before := false
	after := false
	switch p.peek() {
	case '<':
		before = true
		p.pos++
	case '>':
		after = true
		p.pos++
	}
	start, err := p.parseNumber()
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(p.s[p.pos:], ".."):
		p.pos += 2
		if p.peek() == '>' {
			after = true
			p.pos++
		}
		end, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &Range{Start: start, End: end, Before: before, After: after}, nil
	case p.peek() == '^':
		if before || after {
			return nil, p.errorf("partial bound on a between-position site")
		}
		p.pos++
		end, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &Between{Start: start, End: end}, nil
	default:
		return &Range{Start: start, End: start, Before: before, After: after}, nil
	}
}

func (p *locParser) parseNumber() (int, error) {
	start := p.pos
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected a coordinate at offset %d", start)
	}
	n, err := parseInt(p.s[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid coordinate %q", p.s[start:p.pos])
	}
	return n, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentByte(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '.' || c == '-'
}

func stripSpace(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
