// Package frame provides a columnar in-memory table for tabular
// data preparation. A Frame is an ordered set of named, homogeneous
// columns sharing a single row count. Row identity is positional;
// Select always copies its backing storage, so derived frames never
// alias the source.
package frame

import (
	"fmt"
	"strings"
)

// Frame is a columnar table: ordered named columns of equal length.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New creates a frame from the given columns. It rejects duplicate
// column names and columns of unequal length.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		if len(f.cols) > 0 && c.Len() != f.cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), f.cols[0].Len())
		}
		f.index[c.Name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// NumRows returns the row count shared by all columns.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of numeric columns in frame order.
func (f *Frame) NumericNames() []string {
	var names []string
	for _, c := range f.cols {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[i], true
}

// SetColumn adds the column, or overwrites an existing column of the
// same name. The length must match the frame's row count unless the
// frame is empty.
func (f *Frame) SetColumn(c Column) error {
	if len(f.cols) > 0 && c.Len() != f.NumRows() {
		return fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), f.NumRows())
	}
	if i, ok := f.index[c.Name]; ok {
		f.cols[i] = c
		return nil
	}
	f.index[c.Name] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// Drop removes the named column if present.
func (f *Frame) Drop(name string) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	delete(f.index, name)
	for j := i; j < len(f.cols); j++ {
		f.index[f.cols[j].Name] = j
	}
}

// Select returns a new frame holding the rows at the given indices,
// in order. The result owns fresh backing storage.
func (f *Frame) Select(indices []int) *Frame {
	out := &Frame{
		cols:  make([]Column, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for i, c := range f.cols {
		out.cols[i] = c.take(indices)
		out.index[c.Name] = i
	}
	return out
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		cols:  make([]Column, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for i, c := range f.cols {
		out.cols[i] = c.clone()
		out.index[c.Name] = i
	}
	return out
}

// RowKey returns a canonical string key of row i across all columns,
// used for full-row duplicate detection.
func (f *Frame) RowKey(i int) string {
	var b strings.Builder
	for j, c := range f.cols {
		if j > 0 {
			b.WriteByte(0x1f) // unit separator, cannot appear in cell values
		}
		b.WriteString(c.cell(i))
	}
	return b.String()
}

// HasMissing reports whether any cell in the frame is missing.
func (f *Frame) HasMissing() bool {
	for _, c := range f.cols {
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				return true
			}
		}
	}
	return false
}

// MissingRows returns the indices of rows with at least one missing cell.
func (f *Frame) MissingRows() []int {
	var rows []int
	for i := 0; i < f.NumRows(); i++ {
		for _, c := range f.cols {
			if c.IsMissing(i) {
				rows = append(rows, i)
				break
			}
		}
	}
	return rows
}
