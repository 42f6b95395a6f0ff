package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/require"

	"github.com/namelens/mcname/internal/core"
)

func sampleReport(names []string, codes []core.Availability) *core.Report {
	started := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return core.NewReport("run-1", "batch", started, started.Add(2*time.Second), names, codes)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatGrid, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func TestFormatResult(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	require.Equal(t, "Notch"+strings.Repeat(" ", 12)+"Unavailable", FormatResult("Notch", core.AvailabilityUnavailable))
	require.Equal(t, "averyveryvery... Illegal", FormatResult("averyveryverylongname", core.AvailabilityIllegal))
	require.Equal(t, strings.Repeat("a", 16)+" Available", FormatResult(strings.Repeat("a", 16), core.AvailabilityAvailable))

	// Width and truncation count characters, not bytes.
	require.Equal(t, "ÄÖÜÄÖÜÄÖÜname"+strings.Repeat(" ", 4)+"Illegal", FormatResult("ÄÖÜÄÖÜÄÖÜname", core.AvailabilityIllegal))
	long := FormatResult(strings.Repeat("Ä", 20), core.AvailabilityIllegal)
	require.True(t, utf8.ValidString(long))
	require.Equal(t, strings.Repeat("Ä", 13)+"... Illegal", long)
}

func TestLabelColors(t *testing.T) {
	text.EnableColors()
	label := Label(core.AvailabilityAvailable)
	require.Contains(t, label, "Available")
	require.NotEqual(t, "Available", label)
}

func TestGridFormatterRows(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	names := make([]string, 12)
	codes := make([]core.Availability, 12)
	for i := range names {
		names[i] = "name_" + string(rune('a'+i))
		codes[i] = core.AvailabilityAvailable
	}

	rendered, err := NewFormatter(FormatGrid).FormatReport(sampleReport(names, codes))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, 10, strings.Count(lines[0], "\t"))
	require.Equal(t, 2, strings.Count(lines[1], "\t"))
	require.True(t, strings.HasPrefix(lines[1], "name_k"))
}

func TestTableFormatterSummary(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	report := sampleReport(
		[]string{"Notch", "free_one", "x", "maybe_me"},
		[]core.Availability{core.AvailabilityUnavailable, core.AvailabilityAvailable, core.AvailabilityIllegal, core.AvailabilityUnknown},
	)
	rendered, err := NewFormatter(FormatTable).FormatReport(report)
	require.NoError(t, err)
	require.Contains(t, rendered, "free_one")
	require.Contains(t, rendered, "1 available, 1 unavailable, 1 unknown, 1 illegal")
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	report := sampleReport([]string{"Notch"}, []core.Availability{core.AvailabilityUnavailable})

	rendered, err := NewFormatter(FormatJSON).FormatReport(report)
	require.NoError(t, err)
	require.Contains(t, rendered, "\"name\": \"Notch\"")
	require.Contains(t, rendered, "\"availability\": \"unavailable\"")
	require.Contains(t, rendered, "\"run_id\": \"run-1\"")

	rendered, err = NewFormatter(FormatYAML).FormatReport(report)
	require.NoError(t, err)
	require.Contains(t, rendered, "run_id: run-1")
	require.Contains(t, rendered, "availability: unavailable")

	rendered, err = NewFormatter(FormatJSON).FormatReport(nil)
	require.NoError(t, err)
	require.Empty(t, rendered)
}

func TestSaveAvailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "available.txt")
	names := []string{"Notch", "free_one", "x", "Free_Two", "maybe"}
	codes := []core.Availability{
		core.AvailabilityUnavailable,
		core.AvailabilityAvailable,
		core.AvailabilityIllegal,
		core.AvailabilityAvailable,
		core.AvailabilityUnknown,
	}

	written, err := SaveAvailable(path, names, codes)
	require.NoError(t, err)
	require.Equal(t, 2, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "free_one\nFree_Two\n", string(data))
}

func TestSaveAvailableRejectsMismatch(t *testing.T) {
	_, err := SaveAvailable(filepath.Join(t.TempDir(), "out.txt"), []string{"a"}, nil)
	require.Error(t, err)

	_, err = SaveAvailable("", nil, nil)
	require.Error(t, err)
}
