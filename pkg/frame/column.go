package frame

import (
	"math"
	"strconv"
)

// DType identifies the element type of a column.
type DType int

const (
	// Float64 holds continuous numeric values. Missing values are NaN.
	Float64 DType = iota
	// Int64 holds integer values such as hours, weekdays, or counts.
	// Int64 columns have no missing-value representation.
	Int64
	// String holds categorical values. Missing values are "".
	String
)

func (t DType) String() string {
	switch t {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	case String:
		return "string"
	}
	return "unknown"
}

// Column is a named, homogeneous sequence of values. Exactly one of the
// backing slices is populated, matching Type.
type Column struct {
	Name    string
	Type    DType
	Floats  []float64
	Ints    []int64
	Strings []string
}

// NewFloatColumn creates a Float64 column backed by vals.
func NewFloatColumn(name string, vals []float64) Column {
	return Column{Name: name, Type: Float64, Floats: vals}
}

// NewIntColumn creates an Int64 column backed by vals.
func NewIntColumn(name string, vals []int64) Column {
	return Column{Name: name, Type: Int64, Ints: vals}
}

// NewStringColumn creates a String column backed by vals.
func NewStringColumn(name string, vals []string) Column {
	return Column{Name: name, Type: String, Strings: vals}
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	switch c.Type {
	case Float64:
		return len(c.Floats)
	case Int64:
		return len(c.Ints)
	default:
		return len(c.Strings)
	}
}

// IsNumeric reports whether the column holds Float64 or Int64 values.
func (c Column) IsNumeric() bool {
	return c.Type == Float64 || c.Type == Int64
}

// IsMissing reports whether the value at row i is missing.
func (c Column) IsMissing(i int) bool {
	switch c.Type {
	case Float64:
		return math.IsNaN(c.Floats[i])
	case String:
		return c.Strings[i] == ""
	default:
		return false
	}
}

// Float returns the value at row i as a float64. String columns
// return NaN; callers filter on IsNumeric first.
func (c Column) Float(i int) float64 {
	switch c.Type {
	case Float64:
		return c.Floats[i]
	case Int64:
		return float64(c.Ints[i])
	default:
		return math.NaN()
	}
}

// cell formats the value at row i for row keys and rendering.
func (c Column) cell(i int) string {
	switch c.Type {
	case Float64:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case Int64:
		return strconv.FormatInt(c.Ints[i], 10)
	default:
		return c.Strings[i]
	}
}

// take returns a new column holding the rows at the given indices,
// with freshly allocated backing storage.
func (c Column) take(indices []int) Column {
	out := Column{Name: c.Name, Type: c.Type}
	switch c.Type {
	case Float64:
		out.Floats = make([]float64, len(indices))
		for i, idx := range indices {
			out.Floats[i] = c.Floats[idx]
		}
	case Int64:
		out.Ints = make([]int64, len(indices))
		for i, idx := range indices {
			out.Ints[i] = c.Ints[idx]
		}
	default:
		out.Strings = make([]string, len(indices))
		for i, idx := range indices {
			out.Strings[i] = c.Strings[idx]
		}
	}
	return out
}

// clone returns a deep copy of the column.
func (c Column) clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	switch c.Type {
	case Float64:
		out.Floats = append([]float64(nil), c.Floats...)
	case Int64:
		out.Ints = append([]int64(nil), c.Ints...)
	default:
		out.Strings = append([]string(nil), c.Strings...)
	}
	return out
}
