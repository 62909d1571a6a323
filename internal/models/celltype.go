// Package models defines the core data structures shared by the dataset store,
// the preparation pipeline and the HTTP layer.
package models

import "strings"

// CellType is one label of the fixed cell category enumeration.
type CellType string

// PairKey identifies one source→target bundle in the dataset, e.g. "Fibroblasts2Pericytes".
type PairKey string

// PairSeparator joins the source and target labels of a PairKey.
const PairSeparator = "2"

// DefaultCellTypes is the enumeration used when configuration does not override it.
var DefaultCellTypes = CellTypes{
	"Adipocytes",
	"Endothelial Cells",
	"Erythroblasts",
	"Fibroblasts",
	"Hematopoietic Cells",
	"Pericytes",
	"Schwann Cells",
	"Smooth Muscle Cells",
	"Vascular Smooth Muscle Cells",
}

// CellTypes is an ordered enumeration of cell types.
type CellTypes []CellType

// Contains reports whether c is a member of the enumeration.
func (ct CellTypes) Contains(c CellType) bool {
	for _, t := range ct {
		if t == c {
			return true
		}
	}
	return false
}

// Strings returns the labels in enumeration order.
func (ct CellTypes) Strings() []string {
	out := make([]string, len(ct))
	for i, t := range ct {
		out[i] = string(t)
	}
	return out
}

// Compact returns the label with every whitespace character removed.
func (c CellType) Compact() string {
	return strings.Join(strings.Fields(string(c)), "")
}

// NewPairKey joins two cell types into a directional key, source first.
func NewPairKey(source, target CellType) PairKey {
	return PairKey(source.Compact() + PairSeparator + target.Compact())
}
