package genbank

import (
	"strings"

	"github.com/vertti/genbankio/internal/wrap"
)

// referenceSubfields maps the indented sub-keywords of a REFERENCE block to
// their Reference field. Unrecognized sub-keywords are skipped.
var referenceSubfields = map[string]func(*Reference, string){
	"AUTHORS": func(r *Reference, s string) { r.Authors = s },
	"CONSRTM": func(r *Reference, s string) { r.Consortium = s },
	"TITLE":   func(r *Reference, s string) { r.Title = s },
	"JOURNAL": func(r *Reference, s string) { r.Journal = s },
	"PUBMED":  func(r *Reference, s string) { r.PubMed = s },
	"REMARK":  func(r *Reference, s string) { r.Remark = s },
}

// parseReference reads one REFERENCE block. The description is the rest of
// the REFERENCE line itself (e.g. "1  (bases 1 to 5028)"); sub-keyword
// lines are indented less than the 12-column text margin, continuation
// lines at least that much.
func parseReference(rest string, continuations []string) Reference {
	ref := Reference{}

	key := ""
	frags := []string{rest}
	flush := func() {
		text := wrap.Unwrap(frags)
		if key == "" {
			ref.Description = text
		} else if set, ok := referenceSubfields[key]; ok {
			set(&ref, text)
		}
		frags = frags[:0]
	}

	for _, line := range continuations {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if indentOf(line) < headerIndent {
			flush()
			key, trimmed, _ = strings.Cut(trimmed, " ")
			frags = append(frags, strings.TrimSpace(trimmed))
			continue
		}
		frags = append(frags, trimmed)
	}
	flush()
	return ref
}

// appendReference renders one REFERENCE block.
func appendReference(dst []byte, ref *Reference) []byte {
	dst = appendHeaderField(dst, "REFERENCE", ref.Description)
	if ref.Authors != "" {
		dst = appendHeaderField(dst, "  AUTHORS", ref.Authors)
	}
	if ref.Consortium != "" {
		dst = appendHeaderField(dst, "  CONSRTM", ref.Consortium)
	}
	if ref.Title != "" {
		dst = appendHeaderField(dst, "  TITLE", ref.Title)
	}
	if ref.Journal != "" {
		dst = appendHeaderField(dst, "  JOURNAL", ref.Journal)
	}
	if ref.PubMed != "" {
		dst = appendHeaderField(dst, "   PUBMED", ref.PubMed)
	}
	if ref.Remark != "" {
		dst = appendHeaderField(dst, "  REMARK", ref.Remark)
	}
	return dst
}
