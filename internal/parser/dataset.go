// Package parser decodes the interaction dataset and derives display graphs
// from prepared matrices. Every bundle is validated when the document is parsed
// so lookups never meet a half-formed table.
package parser

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/ligandscope/core/internal/models"
)

// ParseDataset decodes a document keyed by pair key into validated bundles.
func ParseDataset(data []byte) (map[models.PairKey]*models.InteractionBundle, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid dataset: not a JSON document")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("invalid dataset: top level must be an object keyed by cell pair")
	}

	bundles := make(map[models.PairKey]*models.InteractionBundle)
	var parseErr error
	root.ForEach(func(k, v gjson.Result) bool {
		key := models.PairKey(k.String())
		if _, dup := bundles[key]; dup {
			parseErr = fmt.Errorf("invalid dataset: pair %q appears twice", key)
			return false
		}
		bundle, err := ParseBundle(key, v)
		if err != nil {
			parseErr = err
			return false
		}
		bundles[key] = bundle
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return bundles, nil
}

// ParseBundle validates one pair entry. A missing table yields a
// MissingDataError, an unusable one a MalformedDataError.
func ParseBundle(key models.PairKey, v gjson.Result) (*models.InteractionBundle, error) {
	if !v.IsObject() {
		return nil, &models.MalformedDataError{Key: key, Field: "bundle", Err: errors.New("not an object")}
	}

	for _, field := range []string{models.FieldLigandActivities, models.FieldLigandReceptor, models.FieldLigandTarget} {
		if !v.Get(field).Exists() {
			return nil, &models.MissingDataError{Key: key, Field: field}
		}
	}

	activities, err := parseActivities(v.Get(models.FieldLigandActivities))
	if err != nil {
		return nil, &models.MalformedDataError{Key: key, Field: models.FieldLigandActivities, Err: err}
	}
	receptor, err := parseMatrix(v.Get(models.FieldLigandReceptor))
	if err != nil {
		return nil, &models.MalformedDataError{Key: key, Field: models.FieldLigandReceptor, Err: err}
	}
	target, err := parseMatrix(v.Get(models.FieldLigandTarget))
	if err != nil {
		return nil, &models.MalformedDataError{Key: key, Field: models.FieldLigandTarget, Err: err}
	}

	return &models.InteractionBundle{
		Key:              key,
		LigandActivities: activities,
		LigandReceptor:   receptor,
		LigandTarget:     target,
	}, nil
}

func parseMatrix(v gjson.Result) (*models.InteractionMatrix, error) {
	if !v.IsObject() {
		return nil, errors.New("expected an object with rows, columns and values")
	}
	rows, err := parseLabels(v.Get("rows"), "rows")
	if err != nil {
		return nil, err
	}
	columns, err := parseLabels(v.Get("columns"), "columns")
	if err != nil {
		return nil, err
	}

	raw := v.Get("values")
	if !raw.IsArray() {
		return nil, errors.New("values must be an array of rows")
	}
	values := make([][]float64, 0, len(rows))
	for i, row := range raw.Array() {
		if !row.IsArray() {
			return nil, fmt.Errorf("values row %d is not an array", i)
		}
		cells := row.Array()
		parsed := make([]float64, len(cells))
		for j, cell := range cells {
			if cell.Type != gjson.Number {
				return nil, fmt.Errorf("values[%d][%d] is not a number", i, j)
			}
			if cell.Num < 0 {
				return nil, fmt.Errorf("values[%d][%d] is negative (%g)", i, j, cell.Num)
			}
			parsed[j] = cell.Num
		}
		values = append(values, parsed)
	}

	return models.NewInteractionMatrix(rows, columns, values)
}

func parseLabels(v gjson.Result, name string) ([]string, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%s must be an array of labels", name)
	}
	items := v.Array()
	labels := make([]string, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%s[%d] is not a string", name, i)
		}
		labels[i] = item.String()
	}
	return labels, nil
}

func parseActivities(v gjson.Result) ([]models.LigandActivity, error) {
	if !v.IsArray() {
		return nil, errors.New("expected an array of ligand activity rows")
	}
	items := v.Array()
	out := make([]models.LigandActivity, 0, len(items))
	for i, item := range items {
		ligand := item.Get("test_ligand")
		if ligand.Type != gjson.String || ligand.String() == "" {
			return nil, fmt.Errorf("row %d has no test_ligand", i)
		}
		out = append(out, models.LigandActivity{
			TestLigand:    ligand.String(),
			AUROC:         item.Get("auroc").Float(),
			AUPR:          item.Get("aupr").Float(),
			AUPRCorrected: item.Get("aupr_corrected").Float(),
			Pearson:       item.Get("pearson").Float(),
		})
	}
	return out, nil
}
