// Package export writes the tables behind a pair view as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ligandscope/core/internal/models"
)

// Sheet names of the exported workbook, in order.
const (
	SheetLigandReceptor   = "ligand_receptor"
	SheetCollagenIntegrin = "collagen_integrin"
	SheetLigandActivities = "ligand_activities"
)

// ActivityHeader is the header row of the ligand activities sheet.
var ActivityHeader = []string{"test_ligand", "auroc", "aupr", "aupr_corrected", "pearson"}

// WriteWorkbook writes the full matrix, the collagen-integrin matrix and the
// ligand activities of view as three sheets.
func WriteWorkbook(w io.Writer, view *models.PairView, activities []models.LigandActivity) error {
	if view == nil || view.Heatmap == nil {
		return fmt.Errorf("export: no view to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLigandReceptor); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeMatrix(f, SheetLigandReceptor, view.Heatmap.Matrix); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCollagenIntegrin); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeMatrix(f, SheetCollagenIntegrin, view.Filtered); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetLigandActivities); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeActivities(f, activities); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// writeMatrix lays a matrix out with column labels in the first row and row
// labels in the first column.
func writeMatrix(f *excelize.File, sheet string, m *models.InteractionMatrix) error {
	if m == nil || (len(m.Rows()) == 0 && len(m.Columns()) == 0) {
		return nil
	}
	header := []any{""}
	for _, c := range m.Columns() {
		header = append(header, c)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	values := m.Values()
	for i, label := range m.Rows() {
		row := []any{label}
		for _, v := range values[i] {
			row = append(row, v)
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeActivities(f *excelize.File, activities []models.LigandActivity) error {
	header := make([]any, len(ActivityHeader))
	for i, h := range ActivityHeader {
		header[i] = h
	}
	if err := setRow(f, SheetLigandActivities, 1, header); err != nil {
		return err
	}
	for i, a := range activities {
		row := []any{a.TestLigand, a.AUROC, a.AUPR, a.AUPRCorrected, a.Pearson}
		if err := setRow(f, SheetLigandActivities, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: %s row %d: %w", sheet, row, err)
	}
	return nil
}
