package genbank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression magic bytes, sniffed so that renamed files still decompress.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// LoadFile parses every record from the file at path. Gzip- and
// zstd-compressed files (.gb.gz, .gb.zst) are decompressed transparently,
// detected by magic bytes rather than file name.
func LoadFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	r, err := wrapDecompress(f)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	records, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// wrapDecompress wraps r with the decompressor matching its leading magic
// bytes, or returns it buffered and untouched for plain text.
func wrapDecompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	header, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	switch {
	case len(header) >= 2 && header[0] == gzipMagic[0] && header[1] == gzipMagic[1]:
		return gzip.NewReader(br)
	case len(header) >= 4 && string(header) == string(zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return br, nil
	}
}

// DumpFile writes records to the file at path, compressing the output
// when the path ends in .gz or .zst.
func DumpFile(path string, records []*Record, opts *WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var (
		dst    io.Writer = f
		finish func() error
	)
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz := gzip.NewWriter(f)
		dst, finish = gz, gz.Close
	case strings.HasSuffix(path, ".zst"):
		enc, err := zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return err
		}
		dst, finish = enc, enc.Close
	}

	if err := Dump(dst, records, opts); err != nil {
		if finish != nil {
			_ = finish()
		}
		_ = f.Close()
		return err
	}
	if finish != nil {
		if err := finish(); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}
