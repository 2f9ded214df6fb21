package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular is implemented by values that know their table form.
type Tabular interface {
	Table() *Table
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

// Table implements Tabular.
func (t *Table) Table() *Table { return t }

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// TableFormatter renders Tabular values. Plain output is tab-aligned
// columns without borders or styling, for scripts.
type TableFormatter struct {
	Plain     bool
	NoHeaders bool
}

// Format formats data as a table. Values that are not Tabular are
// written as JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	tab, ok := data.(Tabular)
	if !ok {
		return (&JSONFormatter{}).Format(w, data)
	}

	t := tab.Table()
	if f.Plain {
		return t.renderPlain(w, f.NoHeaders)
	}
	_, err := fmt.Fprintln(w, t.render(f.NoHeaders))
	return err
}

func (t *Table) render(noHeaders bool) string {
	lt := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(t.Rows...)

	if !noHeaders && len(t.Headers) > 0 {
		lt = lt.Headers(t.Headers...)
	}
	return lt.String()
}

func (t *Table) renderPlain(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
