// Package genbank provides fast parsing and serialization of GenBank
// sequence-record flat files.
//
// The package reads raw GenBank text into typed Records and writes
// Records back out in canonical flat-file form. Reading is streaming and
// forward-only: Reader.Next (or the Records iterator) materializes one
// record at a time, so arbitrarily large multi-record files can be
// processed in constant memory.
package genbank

import (
	"errors"
	"io"
	"iter"
)

// Load parses every record from r.
func Load(r io.Reader) ([]*Record, error) {
	var records []*Record
	for rec, err := range Records(r) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Records returns a forward-only iterator over the records in r. The
// iterator yields records in file order, then a single non-nil error if
// parsing or the underlying stream failed.
func Records(r io.Reader) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		reader := NewReader(r)
		for {
			rec, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Dump writes records to w, each terminated by "//". A nil opts means
// strict locus validation. The batch aborts on the first failing record;
// records already flushed stay written.
func Dump(w io.Writer, records []*Record, opts *WriteOptions) error {
	bw := NewWriter(w, opts)
	for _, rec := range records {
		if err := bw.Write(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
