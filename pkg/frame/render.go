package frame

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the first limit rows of the frame to w as a bordered
// table. A limit of zero or less renders every row.
func (f *Frame) Render(w io.Writer, limit int) {
	n := f.NumRows()
	if limit > 0 && limit < n {
		n = limit
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(f.cols))
	for i, c := range f.cols {
		header[i] = c.Name
	}
	t.AppendHeader(header)

	for i := 0; i < n; i++ {
		row := make(table.Row, len(f.cols))
		for j, c := range f.cols {
			if c.IsMissing(i) {
				row[j] = "<nil>"
				continue
			}
			row[j] = c.cell(i)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", n, f.NumRows())
}
