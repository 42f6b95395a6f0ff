package output

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/namelens/mcname/internal/core"
)

const (
	// DefaultGridColumns is the number of results per grid row.
	DefaultGridColumns = 10

	nameColumnWidth = 17
	truncatedLength = 13
)

var labelColors = map[core.Availability]text.Colors{
	core.AvailabilityAvailable:   {text.FgGreen},
	core.AvailabilityUnavailable: {text.FgRed},
	core.AvailabilityUnknown:     {text.FgYellow},
	core.AvailabilityIllegal:     {text.FgHiMagenta},
}

// Label returns the colored availability label.
func Label(availability core.Availability) string {
	return labelColors[availability].Sprint(availability.String())
}

// FormatResult renders one name and its label, the name padded to a fixed column.
// Names longer than the legal maximum are cut and marked with an ellipsis.
func FormatResult(name string, availability core.Availability) string {
	display := name
	if runes := []rune(display); len(runes) > core.MaxNameLength {
		display = string(runes[:truncatedLength]) + "..."
	}
	return text.Pad(display, nameColumnWidth, ' ') + Label(availability)
}

// GridFormatter renders results as tab-separated cells, Columns per row.
type GridFormatter struct {
	Columns int
}

// FormatReport renders the report as a grid.
func (f *GridFormatter) FormatReport(report *core.Report) (string, error) {
	if report == nil || len(report.Results) == 0 {
		return "", nil
	}

	columns := f.Columns
	if columns <= 0 {
		columns = DefaultGridColumns
	}

	var b strings.Builder
	for i, result := range report.Results {
		b.WriteString(FormatResult(result.Name, result.Availability))
		b.WriteString("\t")
		if i%columns == columns-1 {
			b.WriteString("\n")
		}
	}
	if len(report.Results)%columns != 0 {
		b.WriteString("\n")
	}
	return b.String(), nil
}
