package genbank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeaturesBasic(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     source          1..5028`,
		`                     /organism="Saccharomyces cerevisiae"`,
		`                     /mol_type="genomic DNA"`,
		`     CDS             complement(join(1..3,7..10))`,
		`                     /gene="AXL2"`,
		`                     /pseudo`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	require.Len(t, features, 2)

	source := features[0]
	assert.Equal(t, "source", source.Kind)
	assert.Equal(t, &Range{Start: 1, End: 5028}, source.Location)
	require.Len(t, source.Qualifiers, 2)
	assert.Equal(t, NewQualifier("organism", "Saccharomyces cerevisiae"), source.Qualifiers[0])
	assert.Equal(t, NewQualifier("mol_type", "genomic DNA"), source.Qualifiers[1])

	cds := features[1]
	assert.Equal(t, "CDS", cds.Kind)
	assert.Equal(t, &Complement{Location: &Join{Locations: []Location{
		&Range{Start: 1, End: 3},
		&Range{Start: 7, End: 10},
	}}}, cds.Location)
	require.Len(t, cds.Qualifiers, 2)
	assert.Equal(t, NewFlag("pseudo"), cds.Qualifiers[1])
	assert.Nil(t, cds.Qualifiers[1].Value)
}

func TestParseFeaturesMultilineQuotedValue(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     gene            1..10`,
		`                     /note="this is a`,
		`                     long note"`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	require.Len(t, features, 1)
	require.Len(t, features[0].Qualifiers, 1)
	assert.Equal(t, "this is a long note", *features[0].Qualifiers[0].Value)
}

func TestParseFeaturesTranslationRejoin(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     CDS             1..36`,
		`                     /translation="MTQLQISLLL`,
		`                     TATISLLHLV`,
		`                     VATPYEAYPI"`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	require.Len(t, features[0].Qualifiers, 1)
	// unbroken runs rejoin without inserted spaces
	assert.Equal(t, "MTQLQISLLLTATISLLHLVVATPYEAYPI", *features[0].Qualifiers[0].Value)
}

func TestParseFeaturesQuotedSlashContinuation(t *testing.T) {
	t.Parallel()

	// a line starting with '/' inside an open quoted value is content,
	// not a new qualifier
	lines := []string{
		`     misc_feature    1..10`,
		`                     /note="ratio is about`,
		`                     /2 of the total"`,
		`                     /label=after`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	require.Len(t, features[0].Qualifiers, 2)
	assert.Equal(t, "ratio is about /2 of the total", *features[0].Qualifiers[0].Value)
	assert.Equal(t, "after", *features[0].Qualifiers[1].Value)
}

func TestParseFeaturesEscapedQuotes(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     gene            1..10`,
		`                     /note="the ""real"" gene"`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	assert.Equal(t, `the "real" gene`, *features[0].Qualifiers[0].Value)
}

func TestParseFeaturesLocationContinuation(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     CDS             join(1..100,200..300,400..500,600..700,800..900,`,
		`                     1000..1100)`,
		`                     /gene="big"`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	join, ok := features[0].Location.(*Join)
	require.True(t, ok)
	assert.Len(t, join.Locations, 6)
}

func TestParseFeaturesRepeatedKeysKeepOrder(t *testing.T) {
	t.Parallel()

	lines := []string{
		`     gene            1..10`,
		`                     /note=first`,
		`                     /note=second`,
		`                     /note=third`,
	}
	features, err := parseFeatures(lines, 1)
	require.NoError(t, err)
	quals := features[0].Qualifiers
	require.Len(t, quals, 3)
	assert.Equal(t, "first", *quals[0].Value)
	assert.Equal(t, "second", *quals[1].Value)
	assert.Equal(t, "third", *quals[2].Value)
}

func TestParseFeaturesMissingLocation(t *testing.T) {
	t.Parallel()

	_, err := parseFeatures([]string{`     gene`}, 7)
	require.Error(t, err)
	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestAppendFeatureRoundTrip(t *testing.T) {
	t.Parallel()

	longNote := "a rather long annotation note that will definitely not fit on a " +
		"single line of the feature table and therefore has to wrap"
	feature := Feature{
		Kind:     "CDS",
		Location: &Complement{Location: &Range{Start: 10, End: 400}},
		Qualifiers: []Qualifier{
			NewQualifier("gene", "AXL2"),
			NewQualifier("note", longNote),
			NewQualifier("codon_start", "1"),
			NewFlag("pseudo"),
		},
	}

	text := string(appendFeatureTable(nil, []Feature{feature}))
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), lineWidth, "line %q", line)
	}

	parsed, err := parseFeatures(strings.Split(text, "\n")[1:], 1)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, feature, parsed[0])
}

func TestAppendQualifierQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		q    Qualifier
		want string
	}{
		{NewQualifier("codon_start", "1"), "/codon_start=1\n"},
		{NewQualifier("product", "Axl2p"), "/product=Axl2p\n"},
		{NewQualifier("note", "two words"), "/note=\"two words\"\n"},
		{NewQualifier("note", `say "hi"`), "/note=\"say \"\"hi\"\"\"\n"},
		{NewQualifier("note", ""), "/note=\"\"\n"},
		{NewFlag("pseudo"), "/pseudo\n"},
	}
	for _, tt := range tests {
		got := string(appendQualifier(nil, tt.q))
		assert.Equal(t, strings.Repeat(" ", qualIndent)+tt.want, got)
	}
}

func TestWrapLocationBreaksAfterCommas(t *testing.T) {
	t.Parallel()

	text := "join(1..100,200..300,400..500)"
	lines := wrapLocation(text, 14)
	assert.Equal(t, []string{"join(1..100,", "200..300,", "400..500)"}, lines)
	assert.Equal(t, text, strings.Join(lines, ""))
}
