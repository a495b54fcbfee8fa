package maidata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `&title=Test Song
&artist=Somebody
&wholebpm=173
&lv_2=5
&des_2=-
&inote_2=
(173){1},
{2}3,3,
{2}2,2,
E
&lv_3=7
&des_3=charter
&inote_3=
(173){1},
{2}1,8,
E
&lv_4=8
`

func TestParse_Metadata(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "Test Song", f.Metadata["title"])
	assert.Equal(t, "Somebody", f.Metadata["artist"])
	assert.Equal(t, "173", f.Metadata["wholebpm"])
	assert.Equal(t, "Test Song", f.Title())

	bpm, ok := f.WholeBPM()
	require.True(t, ok)
	assert.Equal(t, 173.0, bpm)
}

func TestParse_Charts(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	require.Len(t, f.Charts, 3)

	c2, ok := f.Chart(2)
	require.True(t, ok)
	assert.Equal(t, "5", c2.Level)
	assert.Equal(t, "-", c2.Description)
	assert.Equal(t, []string{"(173){1},", "{2}3,3,", "{2}2,2,"}, c2.NoteData)

	c3, ok := f.Chart(3)
	require.True(t, ok)
	assert.Equal(t, "7", c3.Level)
	assert.Equal(t, "charter", c3.Description)
	assert.Equal(t, []string{"(173){1},", "{2}1,8,"}, c3.NoteData)

	// lv_4 has no inote block; the chart still exists, empty.
	c4, ok := f.Chart(4)
	require.True(t, ok)
	assert.Equal(t, "8", c4.Level)
	assert.Empty(t, c4.NoteData)

	_, ok = f.Chart(6)
	assert.False(t, ok)
}

func TestParse_ChartsSortedByNumber(t *testing.T) {
	input := "&lv_5=12\n&lv_2=5\n&lv_3=7\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, f.Charts, 3)
	assert.Equal(t, 2, f.Charts[0].Number)
	assert.Equal(t, 3, f.Charts[1].Number)
	assert.Equal(t, 5, f.Charts[2].Number)
}

func TestParse_BlockTerminatedByNextDirective(t *testing.T) {
	input := `&inote_1=
{4}1,2,3,4,
&lv_1=3
`
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	c, ok := f.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"{4}1,2,3,4,"}, c.NoteData)
	assert.Equal(t, "3", c.Level)
}

func TestParse_BlockTerminatedByEOF(t *testing.T) {
	input := "&inote_1=\n{4}1,2,\n{4}3,4,"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	c, ok := f.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"{4}1,2,", "{4}3,4,"}, c.NoteData)
}

func TestParse_DirectiveLineTextNotCollected(t *testing.T) {
	// Note data on the inote directive line itself is discarded.
	input := "&inote_1={4}1,2,\n{4}3,4,\nE\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	c, ok := f.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"{4}3,4,"}, c.NoteData)
}

func TestParse_EmptyLinesInsideBlockSkipped(t *testing.T) {
	input := "&inote_1=\n{4}1,2,\n\n   \n{4}3,4,\nE\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	c, ok := f.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"{4}1,2,", "{4}3,4,"}, c.NoteData)
}

func TestParse_StraySentinelSkipped(t *testing.T) {
	input := "E\n&title=After Stray E\nE\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "After Stray E", f.Title())
	assert.Empty(t, f.Charts)
}

func TestParse_TextOutsideBlockIgnored(t *testing.T) {
	input := "stray text\n&title=Song\nmore stray text\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Song", f.Title())
	assert.Len(t, f.Metadata, 1)
}

func TestParse_DirectiveWithoutValue(t *testing.T) {
	f, err := Parse(strings.NewReader("&freemsg=\n&shortid\n"))
	require.NoError(t, err)

	v, ok := f.Metadata["freemsg"]
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, ok = f.Metadata["shortid"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestParse_ValueWithEquals(t *testing.T) {
	// Only the first = splits key from value.
	f, err := Parse(strings.NewReader("&memo=a=b=c\n"))
	require.NoError(t, err)
	assert.Equal(t, "a=b=c", f.Metadata["memo"])
}

func TestParse_LeadingBOM(t *testing.T) {
	f, err := Parse(strings.NewReader("\uFEFF&title=BOM Song\n"))
	require.NoError(t, err)
	assert.Equal(t, "BOM Song", f.Title())
}

func TestParse_CRLFLineEndings(t *testing.T) {
	f, err := Parse(strings.NewReader("&title=Windows\r\n&inote_1=\r\n{4}1,2,\r\nE\r\n"))
	require.NoError(t, err)

	assert.Equal(t, "Windows", f.Title())
	c, ok := f.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"{4}1,2,"}, c.NoteData)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Metadata)
	assert.Empty(t, f.Charts)
}

func TestParse_NonNumericChartSuffixIgnored(t *testing.T) {
	input := "&lv_utage=15\n&lv_2=5\n"
	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, f.Charts, 1)
	assert.Equal(t, 2, f.Charts[0].Number)
	// The directive itself is still kept as metadata.
	assert.Equal(t, "15", f.Metadata["lv_utage"])
}

func TestWholeBPM_Missing(t *testing.T) {
	f, err := Parse(strings.NewReader("&title=No BPM\n"))
	require.NoError(t, err)

	_, ok := f.WholeBPM()
	assert.False(t, ok)
}

func TestWholeBPM_NotNumeric(t *testing.T) {
	f, err := Parse(strings.NewReader("&wholebpm=fast\n"))
	require.NoError(t, err)

	_, ok := f.WholeBPM()
	assert.False(t, ok)
}

func TestWholeBPM_Fractional(t *testing.T) {
	f, err := Parse(strings.NewReader("&wholebpm=182.5\n"))
	require.NoError(t, err)

	bpm, ok := f.WholeBPM()
	require.True(t, ok)
	assert.Equal(t, 182.5, bpm)
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "complete file",
			input: "&title=T\n&des=D\n&inote_2=\n{4}1,\nE\n",
			want:  nil,
		},
		{
			name:  "missing title and des",
			input: "&artist=A\n",
			want:  []string{"missing required field: title", "missing required field: des"},
		},
		{
			name:  "chart without note data",
			input: "&title=T\n&des=D\n&lv_3=9\n",
			want:  []string{"chart 3 has no note data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Warnings())
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maidata.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0644))

	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Song", f.Title())
	assert.Len(t, f.Charts, 3)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open chart file")
}
