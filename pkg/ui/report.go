// Package ui renders query reports for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"groupby/pkg/query"
	"groupby/pkg/ui/base"
	"groupby/pkg/utils/functools"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 48
)

// Options control report rendering.
type Options struct {
	// Plain writes tab-separated key/value lines without styling, for pipes.
	Plain bool

	// MaxWidth caps each column; zero uses the default.
	MaxWidth int
}

// WriteReport renders r to w.
func WriteReport(w io.Writer, r *query.Report, opts Options) error {
	var out string
	if opts.Plain {
		out = Plain(r)
	} else {
		out = Styled(r, opts.MaxWidth)
	}
	_, err := io.WriteString(w, out)
	return err
}

// Plain renders one "key<TAB>value" line per group.
func Plain(r *query.Report) string {
	var b strings.Builder
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%s\t%s\n", row.Key, row.Value)
	}
	return b.String()
}

// Styled renders the report as a bordered table with a title and summary.
func Styled(r *query.Report, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = maxColumnWidth
	}

	keys := functools.Map(r.Rows, func(row query.Row) string { return row.Key })
	values := functools.Map(r.Rows, func(row query.Row) string { return row.Value })
	rows := functools.Map(r.Rows, func(row query.Row) table.Row { return table.Row{row.Key, row.Value} })

	styles := tableStyles()
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: r.KeyHeader, Width: base.ColumnWidth(r.KeyHeader, keys, minColumnWidth, maxWidth)},
			{Title: r.ValueHeader, Width: base.ColumnWidth(r.ValueHeader, values, minColumnWidth, maxWidth)},
		}),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithStyles(styles),
		table.WithHeight(len(rows)+lipgloss.Height(styles.Header.Render(r.KeyHeader))),
	)

	title := r.Title
	if title == "" {
		title = "groups"
	}
	summary := fmt.Sprintf("%d groups from %d records", len(r.Rows), r.Records)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(base.TruncateString(title, 2*maxWidth)),
		resultStyle.Render(trimBlankLines(t.View())),
		summaryStyle.Render(summary),
	) + "\n"
}

// Error renders err in a bordered box.
func Error(err error) string {
	return errorStyle.Render(err.Error()) + "\n"
}

func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
