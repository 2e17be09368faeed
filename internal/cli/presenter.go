package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/ui"
)

// RowFormat is the layout of one result row: name, mean ns, minimum ns and
// the number of timed calls.
const RowFormat = "%-30s %8.0f ns (min: %8d ns) [iterations: %d]\n"

// CLIResultPresenter implements orchestration.ResultPresenter for console
// output. Result rows are never colorized so they stay machine-parsable.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult writes one result row.
func (CLIResultPresenter) PresentResult(res bench.Result, out io.Writer) {
	fmt.Fprintf(out, RowFormat, res.Name, res.Mean, res.Min.Nanoseconds(), res.Completed)
}

// PresentMismatch writes the incorrect-result line in place of a row.
func (CLIResultPresenter) PresentMismatch(res bench.Result, out io.Writer) {
	fmt.Fprintf(out, "%sError: Incorrect result for %s%s\n", ui.ColorRed(), res.Name, ui.ColorReset())
}

// PresentSummary renders a table of every outcome in measurement order and
// marks the fastest one.
func PresentSummary(outcomes []orchestration.Outcome, out io.Writer) {
	if len(outcomes) == 0 {
		return
	}
	theme := ui.GetCurrentTableTheme()
	summary := orchestration.Summarize(outcomes)

	rows := make([][]string, 0, len(outcomes))
	for i := range outcomes {
		o := &outcomes[i]
		status := "ok"
		mean, minimum, calls := "-", "-", "-"
		if o.Mismatched() {
			status = "mismatch"
		} else {
			mean = format.FormatLatency(o.Result.Mean)
			minimum = format.FormatDuration(o.Result.Min)
			calls = strconv.Itoa(o.Result.Completed)
			if o == summary.Fastest {
				status = "fastest"
			}
		}
		rows = append(rows, []string{
			o.Result.Name, mean, minimum, calls,
			format.FormatBytes(o.Memory.TotalAlloc), status,
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Header).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Strategy", "Mean", "Min", "Calls", "Allocated", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return cellStyle.Foreground(theme.Name)
			case 5:
				if rows[row][5] == "mismatch" {
					return cellStyle.Foreground(theme.Error)
				}
				return cellStyle.Foreground(theme.Success)
			}
			return cellStyle.Foreground(theme.Value).Align(lipgloss.Right)
		})

	fmt.Fprintf(out, "\n--- Summary ---\n%s\n", t.Render())
}
