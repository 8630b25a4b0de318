package genbank

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `LOCUS       TESTSEQ                   10 bp DNA       linear   UNK 01-JAN-2000
DEFINITION  synthetic test sequence.
ACCESSION   TESTSEQ
VERSION     TESTSEQ.1
KEYWORDS    .
SOURCE      synthetic construct
  ORGANISM  synthetic construct
            other sequences; artificial sequences.
REFERENCE   1  (bases 1 to 10)
  AUTHORS   Doe,J.
  TITLE     Direct Submission
  JOURNAL   Unpublished
COMMENT     assembled in vitro.
FEATURES             Location/Qualifiers
     source          1..10
                     /organism="synthetic construct"
     CDS             complement(join(1..3,7..10))
                     /gene="tst"
ORIGIN
        1 acgtacgtac
//
`

func TestReaderSampleRecord(t *testing.T) {
	t.Parallel()

	r := NewReader(strings.NewReader(sampleRecord))
	rec, err := r.Next()
	require.NoError(t, err)

	assert.Equal(t, "TESTSEQ", rec.Name)
	assert.Equal(t, 10, rec.Length)
	assert.Equal(t, "DNA", rec.MoleculeType)
	assert.False(t, rec.Circular)
	assert.Equal(t, "UNK", rec.Division)
	assert.Equal(t, &Date{Year: 2000, Month: 1, Day: 1}, rec.Date)
	assert.Equal(t, "synthetic test sequence.", rec.Definition)
	assert.Equal(t, "TESTSEQ", rec.Accession)
	assert.Equal(t, "TESTSEQ.1", rec.Version)
	assert.Equal(t, ".", rec.Keywords)

	require.NotNil(t, rec.Source)
	assert.Equal(t, "synthetic construct", rec.Source.Name)
	assert.Equal(t, "synthetic construct other sequences; artificial sequences.", rec.Source.Organism)

	require.Len(t, rec.References, 1)
	assert.Equal(t, "1  (bases 1 to 10)", rec.References[0].Description)
	assert.Equal(t, "Doe,J.", rec.References[0].Authors)
	assert.Equal(t, "Direct Submission", rec.References[0].Title)
	assert.Equal(t, "Unpublished", rec.References[0].Journal)

	assert.Equal(t, []string{"assembled in vitro."}, rec.Comments)

	require.Len(t, rec.Features, 2)
	assert.Equal(t, "source", rec.Features[0].Kind)
	assert.Equal(t, "CDS", rec.Features[1].Kind)
	assert.Equal(t, &Complement{Location: &Join{Locations: []Location{
		&Range{Start: 1, End: 3},
		&Range{Start: 7, End: 10},
	}}}, rec.Features[1].Location)
	assert.Equal(t, StrandReverse, rec.Features[1].Location.Strand())

	assert.Equal(t, "acgtacgtac", string(rec.Sequence))

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderMultipleRecords(t *testing.T) {
	t.Parallel()

	input := sampleRecord + "\n" + strings.Replace(sampleRecord, "TESTSEQ ", "SECOND  ", 1)
	r := NewReader(strings.NewReader(input))

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "TESTSEQ", first.Name)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "SECOND", second.Name)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := NewReader(strings.NewReader("")).Next()
	assert.ErrorIs(t, err, io.EOF)

	_, err = NewReader(strings.NewReader("\n\n\n")).Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderLengthMismatch(t *testing.T) {
	t.Parallel()

	input := strings.Replace(sampleRecord, " 10 bp", " 12 bp", 1)
	_, err := NewReader(strings.NewReader(input)).Next()

	var lerr *LengthMismatchError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "TESTSEQ", lerr.Name)
	assert.Equal(t, 12, lerr.Declared)
	assert.Equal(t, 10, lerr.Actual)
}

func TestReaderTruncatedRecord(t *testing.T) {
	t.Parallel()

	input := strings.TrimSuffix(sampleRecord, "//\n")
	_, err := NewReader(strings.NewReader(input)).Next()

	var terr *TruncatedRecordError
	assert.ErrorAs(t, err, &terr)
}

func TestReaderUnknownSectionSkipped(t *testing.T) {
	t.Parallel()

	input := strings.Replace(sampleRecord, "FEATURES",
		"NEWTHING    future section\n            more of it\nFEATURES", 1)
	rec, err := NewReader(strings.NewReader(input)).Next()
	require.NoError(t, err)
	assert.Len(t, rec.Features, 2)
	assert.Equal(t, "acgtacgtac", string(rec.Sequence))
}

func TestReaderMustBeginWithLocus(t *testing.T) {
	t.Parallel()

	var ferr *FormatError

	_, err := NewReader(strings.NewReader("DEFINITION  no locus here.\n//\n")).Next()
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Msg, "must begin with LOCUS")

	_, err = NewReader(strings.NewReader("   stray continuation\n//\n")).Next()
	assert.ErrorAs(t, err, &ferr)
}

func TestReaderDuplicateLocus(t *testing.T) {
	t.Parallel()

	input := "LOCUS       A 4 bp DNA linear\nLOCUS       B 4 bp DNA linear\n//\n"
	_, err := NewReader(strings.NewReader(input)).Next()

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Msg, "second LOCUS")
}

func TestReaderSectionOutOfOrder(t *testing.T) {
	t.Parallel()

	input := "LOCUS       X 4 bp DNA linear\n" +
		"ORIGIN\n" +
		"        1 acgt\n" +
		"FEATURES             Location/Qualifiers\n" +
		"     source          1..4\n" +
		"//\n"
	_, err := NewReader(strings.NewReader(input)).Next()

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Msg, "unexpected FEATURES section in sequence")
	assert.Equal(t, 4, ferr.Line)
}

func TestReaderStickyError(t *testing.T) {
	t.Parallel()

	r := NewReader(strings.NewReader("DEFINITION  broken.\n//\n"))
	_, err1 := r.Next()
	require.Error(t, err1)
	_, err2 := r.Next()
	assert.Equal(t, err1, err2)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	records, err := Load(strings.NewReader(sampleRecord + "\n" + sampleRecord))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, records[0].Name, records[1].Name)
}

func TestRecordsIterator(t *testing.T) {
	t.Parallel()

	var names []string
	for rec, err := range Records(strings.NewReader(sampleRecord + sampleRecord)) {
		require.NoError(t, err)
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"TESTSEQ", "TESTSEQ"}, names)

	// early break must not panic or leak
	for range Records(strings.NewReader(sampleRecord + sampleRecord)) {
		break
	}

	// an iterator over broken input yields the error once
	var errs []error
	for _, err := range Records(strings.NewReader("garbage section\n//\n")) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}

func TestReaderCRLFInput(t *testing.T) {
	t.Parallel()

	input := strings.ReplaceAll(sampleRecord, "\n", "\r\n")
	rec, err := NewReader(strings.NewReader(input)).Next()
	require.NoError(t, err)
	assert.Equal(t, "TESTSEQ", rec.Name)
	assert.Equal(t, "acgtacgtac", string(rec.Sequence))
}

func BenchmarkReader(b *testing.B) {
	input := strings.Repeat(sampleRecord, 100)
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewReader(strings.NewReader(input))
		for {
			_, err := r.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
