package genbank

import (
	"bufio"
	"io"
)

// WriteOptions controls how strictly the writer treats locus names.
// The zero value is strict: an overlong name or a name containing
// whitespace is a ValidationError rather than silent corruption.
type WriteOptions struct {
	// EscapeLocus replaces whitespace in the locus name with underscores
	// instead of failing.
	EscapeLocus bool
	// TruncateLocus trims an overlong locus name to the column width
	// instead of failing.
	TruncateLocus bool
}

// Writer serializes records to a stream in GenBank flat-file form. A
// Writer is not safe for concurrent use.
type Writer struct {
	w    *bufio.Writer
	opts WriteOptions
	buf  []byte // per-record scratch, grown once and reused
}

// NewWriter returns a Writer emitting to w. A nil opts means strict
// defaults.
func NewWriter(w io.Writer, opts *WriteOptions) *Writer {
	if opts == nil {
		opts = &WriteOptions{}
	}
	return &Writer{
		w:    bufio.NewWriterSize(w, 1<<20),
		opts: *opts,
		buf:  make([]byte, 0, 4096),
	}
}

// Write serializes one record followed by its "//" terminator. The record
// is rendered in full before any byte reaches the underlying stream, so a
// validation failure writes nothing for this record.
func (w *Writer) Write(rec *Record) error {
	b, err := w.render(rec)
	if err != nil {
		return err
	}
	w.buf = b
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return nil
}

func (w *Writer) render(rec *Record) ([]byte, error) {
	b := w.buf[:0]

	locus, err := appendLocus(b, rec, &w.opts)
	if err != nil {
		return nil, err
	}
	b = append(locus, '\n')

	if rec.Definition != "" {
		b = appendHeaderField(b, "DEFINITION", rec.Definition)
	}
	if rec.Accession != "" {
		b = appendHeaderField(b, "ACCESSION", rec.Accession)
	}
	if rec.Version != "" {
		b = appendHeaderField(b, "VERSION", rec.Version)
	}
	if rec.DBLink != "" {
		b = appendHeaderField(b, "DBLINK", rec.DBLink)
	}
	if rec.Keywords != "" {
		b = appendHeaderField(b, "KEYWORDS", rec.Keywords)
	}
	if rec.Source != nil {
		b = appendHeaderField(b, "SOURCE", rec.Source.Name)
		if rec.Source.Organism != "" {
			b = appendHeaderField(b, "  ORGANISM", rec.Source.Organism)
		}
	}
	for i := range rec.References {
		b = appendReference(b, &rec.References[i])
	}
	for _, comment := range rec.Comments {
		b = appendHeaderField(b, "COMMENT", comment)
	}
	if len(rec.Features) > 0 {
		b = appendFeatureTable(b, rec.Features)
	}
	switch {
	case rec.Contig != nil:
		b = appendContig(b, rec.Contig)
	case len(rec.Sequence) > 0:
		b = appendOrigin(b, rec.Sequence)
	}
	return append(b, "//\n"...), nil
}

// Flush writes buffered output to the underlying stream.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
