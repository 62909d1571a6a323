package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligandscope/core/internal/models"
)

const validDataset = `{
	"Fibroblasts2Pericytes": {
		"ligand_activities": [
			{"test_ligand": "Col1a1", "auroc": 0.66, "aupr": 0.12, "aupr_corrected": 0.05, "pearson": 0.11},
			{"test_ligand": "Tgfb1", "auroc": 0.61, "aupr": 0.09, "aupr_corrected": 0.02, "pearson": 0.07}
		],
		"p_ligand_receptor_network": {
			"rows": ["Itgb1", "Tgfbr2"],
			"columns": ["Col1a1", "Tgfb1"],
			"values": [[0.42, 0], [0, 0.9]]
		},
		"p_ligand_target_network": {
			"rows": ["Fn1"],
			"columns": ["Col1a1", "Tgfb1"],
			"values": [[0.001, 0.02]]
		}
	}
}`

func TestParseDataset_Valid(t *testing.T) {
	bundles, err := ParseDataset([]byte(validDataset))

	require.NoError(t, err)
	require.Len(t, bundles, 1)

	b := bundles["Fibroblasts2Pericytes"]
	require.NotNil(t, b)
	assert.Equal(t, models.PairKey("Fibroblasts2Pericytes"), b.Key)
	assert.Len(t, b.LigandActivities, 2)
	assert.Equal(t, "Col1a1", b.LigandActivities[0].TestLigand)
	assert.InDelta(t, 0.05, b.LigandActivities[0].AUPRCorrected, 1e-12)
	assert.Equal(t, []string{"Itgb1", "Tgfbr2"}, b.LigandReceptor.Rows())
	assert.Equal(t, 0.9, b.LigandReceptor.At(1, 1))
	assert.Equal(t, []string{"Fn1"}, b.LigandTarget.Rows())
}

func TestParseDataset_Empty(t *testing.T) {
	_, err := ParseDataset([]byte{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty dataset")
}

func TestParseDataset_InvalidJSON(t *testing.T) {
	_, err := ParseDataset([]byte(`{invalid json`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON document")
}

func TestParseDataset_NotAnObject(t *testing.T) {
	_, err := ParseDataset([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "keyed by cell pair")
}

func TestParseDataset_MissingTable(t *testing.T) {
	input := []byte(`{
		"Adipocytes2Pericytes": {
			"ligand_activities": [],
			"p_ligand_receptor_network": {"rows": [], "columns": [], "values": []}
		}
	}`)

	_, err := ParseDataset(input)

	var missing *models.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.PairKey("Adipocytes2Pericytes"), missing.Key)
	assert.Equal(t, models.FieldLigandTarget, missing.Field)
}

func TestParseDataset_DuplicatePair(t *testing.T) {
	entry := `{"ligand_activities": [], "p_ligand_receptor_network": {"rows": [], "columns": [], "values": []}, "p_ligand_target_network": {"rows": [], "columns": [], "values": []}}`
	_, err := ParseDataset([]byte(`{"A2B": ` + entry + `, "A2B": ` + entry + `}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "appears twice")
}

func TestParseBundle_Malformed(t *testing.T) {
	testCases := []struct {
		name     string
		receptor string
		contains string
	}{
		{"matrix is not an object", `[1, 2]`, "expected an object"},
		{"rows missing", `{"columns": ["a"], "values": [[1]]}`, "rows must be an array"},
		{"non-string label", `{"rows": [1], "columns": ["a"], "values": [[1]]}`, "rows[0] is not a string"},
		{"non-numeric value", `{"rows": ["r"], "columns": ["a"], "values": [["x"]]}`, "values[0][0] is not a number"},
		{"negative value", `{"rows": ["r"], "columns": ["a"], "values": [[-1]]}`, "negative"},
		{"ragged row", `{"rows": ["r"], "columns": ["a", "b"], "values": [[1]]}`, "shape"},
		{"duplicate label", `{"rows": ["r", "r"], "columns": ["a"], "values": [[1], [2]]}`, "duplicate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := `{
				"X2Y": {
					"ligand_activities": [],
					"p_ligand_receptor_network": ` + tc.receptor + `,
					"p_ligand_target_network": {"rows": [], "columns": [], "values": []}
				}
			}`

			_, err := ParseDataset([]byte(input))

			var malformed *models.MalformedDataError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, models.FieldLigandReceptor, malformed.Field)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestParseBundle_ActivityWithoutLigand(t *testing.T) {
	input := `{
		"X2Y": {
			"ligand_activities": [{"auroc": 0.5}],
			"p_ligand_receptor_network": {"rows": [], "columns": [], "values": []},
			"p_ligand_target_network": {"rows": [], "columns": [], "values": []}
		}
	}`

	_, err := ParseDataset([]byte(input))

	var malformed *models.MalformedDataError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, models.FieldLigandActivities, malformed.Field)
}
