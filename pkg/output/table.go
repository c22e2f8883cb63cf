package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter lists classified lines as a text table.
type TableFormatter struct {
	opts FormatOptions
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders one row per line, in input order.
func (f *TableFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintln(w, report.SummaryLine())
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Level", "Category", "Content", "Connections"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(true)

	for _, n := range report.Result.StructuredNotes {
		table.Append([]string{
			strconv.Itoa(n.LineNum),
			strconv.Itoa(n.Level),
			string(n.Category),
			n.Content,
			strings.Join(n.Connections, " | "),
		})
	}
	table.Render()

	if f.opts.Verbose {
		counts := make(map[string]int)
		for _, n := range report.Result.StructuredNotes {
			counts[string(n.Category)]++
		}

		summary := tablewriter.NewWriter(w)
		summary.SetHeader([]string{"Category", "Lines"})
		summary.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		summary.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, c := range report.Result.Categories {
			summary.Append([]string{string(c), strconv.Itoa(counts[string(c)])})
		}
		summary.Render()

		fmt.Fprintln(w, report.SummaryLine())
	}

	return nil
}
