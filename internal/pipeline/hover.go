package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ligandscope/core/internal/models"
)

// HoverText returns one annotation per cell, indexed [row][column].
func HoverText(m *models.InteractionMatrix) [][]string {
	rows, cols := m.Rows(), m.Columns()
	out := make([][]string, len(rows))
	for i, receptor := range rows {
		out[i] = make([]string, len(cols))
		for j, ligand := range cols {
			out[i][j] = fmt.Sprintf("Ligand: %s<br>Receptor: %s<br>Interaction: %s", ligand, receptor, formatValue(m.At(i, j)))
		}
	}
	return out
}

// formatValue prints v the way the dataset tooling does: shortest round-trip
// digits, positional for decimal exponents in [-4, 16) with at least one
// decimal ("5.0", "1234567.5"), scientific otherwise ("1e-05", "1e+16").
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
