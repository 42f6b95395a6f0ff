package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/namelens/mcname/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatReport renders the report as a table with a per-availability summary footer.
func (f *TableFormatter) FormatReport(report *core.Report) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Name", "Status"})

	for i, result := range report.Results {
		t.AppendRow(table.Row{i + 1, result.Name, Label(result.Availability)})
	}

	t.AppendFooter(table.Row{"", "", summary(report)})
	return t.Render(), nil
}

func summary(report *core.Report) string {
	return fmt.Sprintf("%d available, %d unavailable, %d unknown, %d illegal",
		report.Count(core.AvailabilityAvailable),
		report.Count(core.AvailabilityUnavailable),
		report.Count(core.AvailabilityUnknown),
		report.Count(core.AvailabilityIllegal))
}
