package models

import (
	"errors"
	"fmt"
)

// SamePairMessage is shown to the user when source and target are identical.
const SamePairMessage = "Error: The source and target cell type must be different. Please select a different target cell type."

// ErrMatrixShape and ErrDuplicateLabel are returned by NewInteractionMatrix.
var (
	ErrMatrixShape    = errors.New("matrix shape does not match its labels")
	ErrDuplicateLabel = errors.New("duplicate matrix label")
)

// InvalidPairError reports a selection that cannot form a PairKey.
type InvalidPairError struct {
	Source  CellType
	Target  CellType
	Message string
}

func (e *InvalidPairError) Error() string { return e.Message }

// MissingDataError reports a pair key or bundle table that is absent from the dataset.
type MissingDataError struct {
	Key   PairKey
	Field string
}

func (e *MissingDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("data unavailable: no bundle for pair %q", e.Key)
	}
	return fmt.Sprintf("data unavailable: pair %q has no %q table", e.Key, e.Field)
}

// MalformedDataError reports a bundle table that is present but unusable.
type MalformedDataError struct {
	Key   PairKey
	Field string
	Err   error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %q table for pair %q: %v", e.Field, e.Key, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// EmptyRangeError means a matrix has no positive entries to scale colors against.
type EmptyRangeError struct{}

func (e *EmptyRangeError) Error() string {
	return "no interactions to display: matrix has no positive entries"
}

// ScaleDegenerateError means the low-threshold stop falls outside (0, 1).
type ScaleDegenerateError struct {
	Position float64
}

func (e *ScaleDegenerateError) Error() string {
	return fmt.Sprintf("no interactions to display: low-threshold stop %g is outside (0, 1)", e.Position)
}
