package genbank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadParallel parses every record from r using a pool of workers, one raw
// record chunk per task, and returns the records in file order. It trades
// the constant-memory property of Reader for throughput on multi-record
// files; use Load or Records when memory matters more than speed.
func LoadParallel(r io.Reader, workers int) ([]*Record, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	chunks, err := splitRecordChunks(r)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, len(chunks))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			rec, err := NewReader(bytes.NewReader(chunk)).Next()
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// splitRecordChunks slices the raw input at "//" terminators without
// parsing record contents. A trailing chunk with no terminator is kept so
// that its parse reports the truncation.
func splitRecordChunks(r io.Reader) ([][]byte, error) {
	s := newLineScanner(r)
	var chunks [][]byte
	var chunk []byte
	for {
		line, err := s.next()
		if errors.Is(err, io.EOF) {
			if len(bytes.TrimSpace(chunk)) > 0 {
				chunks = append(chunks, chunk)
			}
			return chunks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("genbank: line %d: %w", s.line(), err)
		}
		chunk = append(chunk, line...)
		chunk = append(chunk, '\n')
		if strings.TrimSpace(line) == "//" {
			chunks = append(chunks, chunk)
			chunk = nil
		}
	}
}
