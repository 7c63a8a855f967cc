package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// PlainTableWriter prints kubectl-style tables: upper-case headers, columns
// padded with spaces and no box-drawing characters, so the output pipes
// cleanly into grep, awk and cut.
type PlainTableWriter struct {
	headers      []string
	rows         [][]string
	columnWidths []int
	minPadding   int
	showHeaders  bool
	output       io.Writer
}

// NewPlainTableWriter creates a table writer that renders to output.
func NewPlainTableWriter(output io.Writer) *PlainTableWriter {
	return &PlainTableWriter{
		minPadding:  3,
		showHeaders: true,
		output:      output,
	}
}

// SetHeaders sets the column headers. They are printed upper-cased.
func (w *PlainTableWriter) SetHeaders(headers ...string) {
	w.headers = make([]string, len(headers))
	w.columnWidths = make([]int, len(headers))
	for i, h := range headers {
		w.headers[i] = strings.ToUpper(h)
		w.columnWidths[i] = utf8.RuneCountInString(w.headers[i])
	}
}

// SetNoHeaders suppresses the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.showHeaders = !noHeaders
}

// AppendRow adds a row, padding or cutting it to the number of headers.
func (w *PlainTableWriter) AppendRow(cells ...string) {
	row := make([]string, len(w.headers))
	for i := range row {
		if i >= len(cells) {
			continue
		}
		row[i] = cells[i]
		w.columnWidths[i] = max(w.columnWidths[i], utf8.RuneCountInString(cells[i]))
	}
	w.rows = append(w.rows, row)
}

// Render writes the table.
func (w *PlainTableWriter) Render() {
	if len(w.headers) == 0 {
		return
	}
	if w.showHeaders {
		w.printRow(w.headers)
	}
	for _, row := range w.rows {
		w.printRow(row)
	}
}

func (w *PlainTableWriter) printRow(row []string) {
	var sb strings.Builder
	for i, cell := range row {
		sb.WriteString(cell)
		if i < len(row)-1 {
			pad := w.columnWidths[i] + w.minPadding - utf8.RuneCountInString(cell)
			sb.WriteString(strings.Repeat(" ", pad))
		}
	}
	fmt.Fprintln(w.output, strings.TrimRight(sb.String(), " "))
}

// truncate collapses whitespace to single spaces and shortens s to maxLen
// runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	maxLen = max(maxLen, 4)
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
