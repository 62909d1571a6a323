package models

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InteractionMatrix is a dense labelled matrix. Columns are ligands; rows are
// receptors or target genes. It is never mutated after construction.
type InteractionMatrix struct {
	rows    []string
	columns []string
	// nil when either dimension is zero, mat.Dense cannot hold an empty matrix
	values *mat.Dense
}

// NewInteractionMatrix validates shape and label uniqueness and copies values.
func NewInteractionMatrix(rows, columns []string, values [][]float64) (*InteractionMatrix, error) {
	if len(values) != len(rows) {
		return nil, fmt.Errorf("%w: %d rows labelled, %d present", ErrMatrixShape, len(rows), len(values))
	}
	if err := checkUnique(rows); err != nil {
		return nil, err
	}
	if err := checkUnique(columns); err != nil {
		return nil, err
	}

	data := make([]float64, 0, len(rows)*len(columns))
	for i, row := range values {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrMatrixShape, rows[i], len(row), len(columns))
		}
		data = append(data, row...)
	}
	return newMatrix(append([]string(nil), rows...), append([]string(nil), columns...), data), nil
}

// EmptyMatrix returns a matrix with no rows over the given columns.
func EmptyMatrix(columns []string) *InteractionMatrix {
	return newMatrix(nil, append([]string(nil), columns...), nil)
}

func newMatrix(rows, columns []string, data []float64) *InteractionMatrix {
	m := &InteractionMatrix{rows: rows, columns: columns}
	if rows == nil {
		m.rows = []string{}
	}
	if columns == nil {
		m.columns = []string{}
	}
	if len(m.rows) > 0 && len(m.columns) > 0 {
		m.values = mat.NewDense(len(m.rows), len(m.columns), data)
	}
	return m
}

func checkUnique(labels []string) error {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		seen[l] = true
	}
	return nil
}

// Dims returns the number of rows and columns.
func (m *InteractionMatrix) Dims() (int, int) {
	return len(m.rows), len(m.columns)
}

// IsEmpty reports whether the matrix has no cells.
func (m *InteractionMatrix) IsEmpty() bool {
	return m.values == nil
}

// Rows returns a copy of the row labels.
func (m *InteractionMatrix) Rows() []string {
	return append([]string(nil), m.rows...)
}

// Columns returns a copy of the column labels.
func (m *InteractionMatrix) Columns() []string {
	return append([]string(nil), m.columns...)
}

// At returns the value at row i, column j.
func (m *InteractionMatrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Values returns the matrix as freshly allocated row slices.
func (m *InteractionMatrix) Values() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i := range m.rows {
		out[i] = make([]float64, len(m.columns))
		if m.values != nil {
			mat.Row(out[i], i, m.values)
		}
	}
	return out
}

// SelectColumns keeps the columns whose label satisfies keep, in order.
func (m *InteractionMatrix) SelectColumns(keep func(string) bool) *InteractionMatrix {
	var idx []int
	var cols []string
	for j, c := range m.columns {
		if keep(c) {
			idx = append(idx, j)
			cols = append(cols, c)
		}
	}
	data := make([]float64, 0, len(m.rows)*len(idx))
	for i := range m.rows {
		for _, j := range idx {
			data = append(data, m.values.At(i, j))
		}
	}
	return newMatrix(append([]string(nil), m.rows...), cols, data)
}

// SelectRows keeps the rows for which keep returns true, in order.
func (m *InteractionMatrix) SelectRows(keep func(label string, values []float64) bool) *InteractionMatrix {
	var rows []string
	var data []float64
	row := make([]float64, len(m.columns))
	for i, r := range m.rows {
		if m.values != nil {
			mat.Row(row, i, m.values)
		}
		if keep(r, row) {
			rows = append(rows, r)
			data = append(data, row...)
		}
	}
	return newMatrix(rows, append([]string(nil), m.columns...), data)
}

// Transpose swaps rows and columns.
func (m *InteractionMatrix) Transpose() *InteractionMatrix {
	if m.values == nil {
		return newMatrix(m.Columns(), m.Rows(), nil)
	}
	return &InteractionMatrix{
		rows:    m.Columns(),
		columns: m.Rows(),
		values:  mat.DenseCopyOf(m.values.T()),
	}
}

// Max returns the largest value, or 0 for an empty matrix.
func (m *InteractionMatrix) Max() float64 {
	if m.values == nil {
		return 0
	}
	return mat.Max(m.values)
}

// MinPositive returns the smallest strictly positive value. ok is false when
// no such value exists.
func (m *InteractionMatrix) MinPositive() (float64, bool) {
	lo, ok := math.Inf(1), false
	for _, v := range m.Positive() {
		if v < lo {
			lo, ok = v, true
		}
	}
	if !ok {
		return 0, false
	}
	return lo, true
}

// Positive returns every strictly positive value in row-major order.
func (m *InteractionMatrix) Positive() []float64 {
	var out []float64
	if m.values == nil {
		return out
	}
	r, c := m.values.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.values.At(i, j); v > 0 {
				out = append(out, v)
			}
		}
	}
	return out
}

// Equal reports whether both matrices have identical labels and values.
func (m *InteractionMatrix) Equal(o *InteractionMatrix) bool {
	if o == nil {
		return false
	}
	if !equalStrings(m.rows, o.rows) || !equalStrings(m.columns, o.columns) {
		return false
	}
	if m.values == nil || o.values == nil {
		return m.values == nil && o.values == nil
	}
	return mat.Equal(m.values, o.values)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type matrixJSON struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

func (m *InteractionMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(matrixJSON{Rows: m.rows, Columns: m.columns, Values: m.Values()})
}

func (m *InteractionMatrix) UnmarshalJSON(data []byte) error {
	var raw matrixJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewInteractionMatrix(raw.Rows, raw.Columns, raw.Values)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
