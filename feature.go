package genbank

import (
	"strings"

	"github.com/vertti/genbankio/internal/wrap"
)

// featureParser assembles Features from the indented lines of a FEATURES
// block. Feature kinds sit at column 6, locations and qualifiers at column
// 22; a location may continue over several lines before the first
// qualifier, and quoted qualifier values may span lines.
type featureParser struct {
	features []Feature
	lineNum  int // line number of the FEATURES keyword, for errors

	inFeature bool
	kind      string
	locFrags  []string
	quals     []Qualifier

	inQual    bool
	qualKey   string
	qualFrags []string
	hasValue  bool
}

func parseFeatures(lines []string, lineNum int) ([]Feature, error) {
	p := featureParser{lineNum: lineNum}
	for _, line := range lines {
		if err := p.feed(line); err != nil {
			return nil, err
		}
	}
	if err := p.flushFeature(); err != nil {
		return nil, err
	}
	return p.features, nil
}

func (p *featureParser) feed(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	// an unterminated quoted value swallows everything, including lines
	// that would otherwise start a new qualifier
	if p.inQual && p.quoteOpen() {
		p.qualFrags = append(p.qualFrags, trimmed)
		return nil
	}

	if indentOf(line) < qualIndent {
		// new feature: kind token, optionally followed by location text
		if err := p.flushFeature(); err != nil {
			return err
		}
		kind, rest, _ := strings.Cut(trimmed, " ")
		p.kind = kind
		p.inFeature = true
		if rest = strings.TrimSpace(rest); rest != "" {
			p.locFrags = append(p.locFrags, rest)
		}
		return nil
	}

	if !p.inFeature {
		return &FormatError{Line: p.lineNum, Msg: "qualifier outside of a feature"}
	}

	if trimmed[0] == '/' {
		p.flushQualifier()
		p.inQual = true
		key, value, found := strings.Cut(trimmed[1:], "=")
		p.qualKey = key
		p.hasValue = found
		if found {
			p.qualFrags = append(p.qualFrags, value)
		}
		return nil
	}

	if p.inQual {
		p.qualFrags = append(p.qualFrags, trimmed)
	} else {
		// location expression continued before the first qualifier
		p.locFrags = append(p.locFrags, trimmed)
	}
	return nil
}

// quoteOpen reports whether the value being accumulated has an odd number
// of quote characters, meaning a quoted string is still open. Escaped
// quotes ("") contribute two and keep the parity unchanged.
func (p *featureParser) quoteOpen() bool {
	n := 0
	for _, frag := range p.qualFrags {
		n += strings.Count(frag, `"`)
	}
	return n%2 == 1
}

func (p *featureParser) flushQualifier() {
	if !p.inQual {
		return
	}
	q := Qualifier{Key: p.qualKey}
	if p.hasValue {
		value := wrap.Unwrap(p.qualFrags)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
		}
		q.Value = &value
	}
	p.quals = append(p.quals, q)

	p.inQual = false
	p.qualKey = ""
	p.qualFrags = p.qualFrags[:0]
	p.hasValue = false
}

func (p *featureParser) flushFeature() error {
	if !p.inFeature {
		return nil
	}
	p.flushQualifier()

	text := strings.Join(p.locFrags, "")
	if text == "" {
		return &FormatError{Line: p.lineNum, Msg: "feature " + p.kind + " has no location"}
	}
	loc, err := ParseLocation(text)
	if err != nil {
		return err
	}
	p.features = append(p.features, Feature{
		Kind:       p.kind,
		Location:   loc,
		Qualifiers: p.quals,
	})

	p.inFeature = false
	p.kind = ""
	p.locFrags = nil
	p.quals = nil
	return nil
}

func indentOf(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// appendFeatureTable renders the FEATURES block for a record.
func appendFeatureTable(dst []byte, features []Feature) []byte {
	dst = appendPadded(dst, "FEATURES", qualIndent)
	dst = append(dst, "Location/Qualifiers\n"...)
	for i := range features {
		dst = appendFeature(dst, &features[i])
	}
	return dst
}

func appendFeature(dst []byte, f *Feature) []byte {
	dst = appendPadded(dst, "", kindIndent)
	dst = appendPadded(dst, f.Kind, qualIndent-kindIndent)
	for i, line := range wrapLocation(FormatLocation(f.Location), lineWidth-qualIndent) {
		if i > 0 {
			dst = appendPadded(dst, "", qualIndent)
		}
		dst = append(dst, line...)
		dst = append(dst, '\n')
	}
	for _, q := range f.Qualifiers {
		dst = appendQualifier(dst, q)
	}
	return dst
}

func appendQualifier(dst []byte, q Qualifier) []byte {
	entry := "/" + q.Key
	if q.Value != nil {
		value := *q.Value
		if needsQuotes(value) {
			value = `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
		}
		entry += "=" + value
	}
	for _, line := range wrap.Wrap(entry, lineWidth-qualIndent) {
		dst = appendPadded(dst, "", qualIndent)
		dst = append(dst, line...)
		dst = append(dst, '\n')
	}
	return dst
}

// needsQuotes reports whether a qualifier value must be quoted on output:
// anything containing whitespace, the separator, a quote, or nothing at
// all.
func needsQuotes(value string) bool {
	return value == "" || strings.ContainsAny(value, " \t=\"")
}

// wrapLocation wraps a location expression, preferring to break right
// after a comma so that re-reading concatenates fragments losslessly.
func wrapLocation(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for len(text) > width {
		cut := strings.LastIndexByte(text[:width], ',')
		if cut < 0 {
			cut = width - 1
		}
		lines = append(lines, text[:cut+1])
		text = text[cut+1:]
	}
	return append(lines, text)
}
