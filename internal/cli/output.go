package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/princespaghetti/speedcfg/internal/speedconfig"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// Render encodes rec in the given format. Attribute order is preserved in
// every format.
func Render(rec *speedconfig.Record, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case formatJSON:
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rec); err != nil {
			return nil, err
		}
	case formatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(rec); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
	case formatText, "":
		renderText(&buf, rec)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return buf.Bytes(), nil
}

func renderText(w io.Writer, rec *speedconfig.Record) {
	for i, name := range speedconfig.Elements {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, name)
		fmt.Fprintln(w, strings.Repeat("-", len(name)))

		g, _ := rec.Group(name)
		if len(g) == 0 {
			fmt.Fprintln(w, "  (no attributes)")
			continue
		}

		table := NewTable(w, "ATTRIBUTE", "VALUE")
		for _, a := range g {
			table.AddRow(a.Name, a.Value)
		}
		table.Print()
	}
}

// Table represents a simple text table
type Table struct {
	Headers []string
	Rows    [][]string
	writer  io.Writer
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{
		Headers: headers,
		Rows:    [][]string{},
		writer:  w,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.Rows = append(t.Rows, values)
}

// Print renders the table
func (t *Table) Print() {
	if len(t.Headers) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
				continue
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		_, _ = fmt.Fprintf(t.writer, "  %s\n", strings.Join(padded, "  ")) // Ignore write errors - buffer backed
	}

	printRow(t.Headers)
	for _, row := range t.Rows {
		printRow(row)
	}
}
