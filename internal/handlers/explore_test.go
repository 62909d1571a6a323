package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ligandscope/core/internal/config"
	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/models"
	"github.com/ligandscope/core/internal/pipeline"
	"github.com/ligandscope/core/internal/store"
)

type countingRecorder map[string]int

func (r countingRecorder) PipelineError(kind string) { r[kind]++ }

func mustMatrix(t *testing.T, rows, cols []string, values [][]float64) *models.InteractionMatrix {
	t.Helper()
	m, err := models.NewInteractionMatrix(rows, cols, values)
	require.NoError(t, err)
	return m
}

func newTestAPI(t *testing.T) (*gin.Engine, countingRecorder) {
	t.Helper()
	full := mustMatrix(t,
		[]string{"Itga1", "Itgb1", "Cd44"},
		[]string{"Col1a1", "Col4a1", "Fn1"},
		[][]float64{{0.2, 0, 0.01}, {0.5, 0.3, 0}, {0, 0, 0.9}},
	)
	zeros := mustMatrix(t, []string{"Itgb1"}, []string{"Col1a1"}, [][]float64{{0}})
	ligandTarget := mustMatrix(t, []string{"Fn1"}, []string{"Col1a1"}, [][]float64{{0.01}})

	st := store.New(map[models.PairKey]*models.InteractionBundle{
		"Fibroblasts2Pericytes": {
			Key: "Fibroblasts2Pericytes",
			LigandActivities: []models.LigandActivity{
				{TestLigand: "Fn1", AUPRCorrected: 0.01},
				{TestLigand: "Col1a1", AUPRCorrected: 0.05},
			},
			LigandReceptor: full,
			LigandTarget:   ligandTarget,
		},
		"Pericytes2Fibroblasts": {
			Key:            "Pericytes2Fibroblasts",
			LigandReceptor: zeros,
			LigandTarget:   zeros,
		},
	})

	selector, err := pipeline.NewSelector(models.CellTypes{"Fibroblasts", "Pericytes", "Adipocytes"})
	require.NoError(t, err)
	explorer := pipeline.NewExplorer(st, selector, pipeline.CollagenIntegrin, pipeline.DefaultLowThresholdFactor)

	recorder := countingRecorder{}
	api := NewAPI(explorer, st, config.RenderConfig{HeatmapWidth: 400, HeatmapHeight: 300, ChordSize: 400}, recorder, logging.NewNop())

	r := gin.New()
	api.Register(r.Group("/api/v1"))
	return r, recorder
}

func get(t *testing.T, r *gin.Engine, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func pairQuery(source, target string) url.Values {
	return url.Values{"source": {source}, "target": {target}}
}

func TestHeatmap(t *testing.T) {
	r, _ := newTestAPI(t)

	t.Run("defaults to the first two cell types", func(t *testing.T) {
		w := get(t, r, "/api/v1/heatmap", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var view models.HeatmapView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, []string{"Col1a1", "Col4a1", "Fn1"}, view.Matrix.Columns())
		require.Len(t, view.ColorScale, 3)
		assert.InDelta(t, 10*0.01/0.9, view.ColorScale[1].Position, 1e-12)
		assert.Equal(t, "Ligand: Col1a1<br>Receptor: Itgb1<br>Interaction: 0.5", view.HoverText[1][0])
		assert.Equal(t, models.ColorbarTitle, view.ColorbarTitle)
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		q := pairQuery("Fibroblasts", "Pericytes")
		q.Set("pretty", "true")

		w := get(t, r, "/api/v1/heatmap", q)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "\n    ")
	})
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  string
		status  int
		kind    string
		message string
	}{
		{"same cell type", "Pericytes", "Pericytes", http.StatusBadRequest, "invalid_pair", models.SamePairMessage},
		{"unknown cell type", "Neurons", "Pericytes", http.StatusBadRequest, "invalid_pair", "not a known cell type"},
		{"pair without data", "Adipocytes", "Fibroblasts", http.StatusNotFound, "missing_data", "data unavailable"},
		{"no positive interactions", "Pericytes", "Fibroblasts", http.StatusUnprocessableEntity, "empty_range", NoInteractionsMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, recorder := newTestAPI(t)

			w := get(t, r, "/api/v1/heatmap", pairQuery(tt.source, tt.target))

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Contains(t, body.Error, tt.message)
			assert.Equal(t, 1, recorder[tt.kind])
		})
	}
}

func TestChord(t *testing.T) {
	r, _ := newTestAPI(t)

	w := get(t, r, "/api/v1/chord", pairQuery("Fibroblasts", "Pericytes"))

	require.Equal(t, http.StatusOK, w.Code)
	var graph models.Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &graph))
	require.NotNil(t, graph.Stats)
	assert.Equal(t, 3, graph.Stats.TotalLinks)
	assert.Equal(t, 2, graph.Stats.Ligands)
	assert.Equal(t, 2, graph.Stats.Receptors)
	for _, l := range graph.Links {
		assert.True(t, strings.HasPrefix(l.Source, "Col"), l.Source)
		assert.True(t, strings.HasPrefix(l.Target, "Itg"), l.Target)
	}
}

func TestImages(t *testing.T) {
	r, _ := newTestAPI(t)
	q := pairQuery("Fibroblasts", "Pericytes")

	t.Run("heatmap png", func(t *testing.T) {
		w := get(t, r, "/api/v1/heatmap.png", q)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
	})

	t.Run("chord svg", func(t *testing.T) {
		w := get(t, r, "/api/v1/chord.svg", q)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("image of an invalid pair is a JSON error", func(t *testing.T) {
		w := get(t, r, "/api/v1/heatmap.png", pairQuery("Pericytes", "Pericytes"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestLigandTables(t *testing.T) {
	r, _ := newTestAPI(t)
	q := pairQuery("Fibroblasts", "Pericytes")

	t.Run("activities best first", func(t *testing.T) {
		w := get(t, r, "/api/v1/ligand-activities", q)

		require.Equal(t, http.StatusOK, w.Code)
		var body ActivitiesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, models.PairKey("Fibroblasts2Pericytes"), body.Key)
		require.Len(t, body.Activities, 2)
		assert.Equal(t, "Col1a1", body.Activities[0].TestLigand)
	})

	t.Run("ligand target matrix", func(t *testing.T) {
		w := get(t, r, "/api/v1/ligand-target", q)

		require.Equal(t, http.StatusOK, w.Code)
		var body MatrixResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Fn1"}, body.Matrix.Rows())
	})
}

func TestExport(t *testing.T) {
	r, _ := newTestAPI(t)

	w := get(t, r, "/api/v1/export.xlsx", pairQuery("Fibroblasts", "Pericytes"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Fibroblasts2Pericytes.xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestCellTypesAndPairs(t *testing.T) {
	r, _ := newTestAPI(t)

	t.Run("cell types", func(t *testing.T) {
		w := get(t, r, "/api/v1/cell-types", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body CellTypesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Fibroblasts", "Pericytes", "Adipocytes"}, body.CellTypes)
		assert.Equal(t, "Fibroblasts", body.DefaultSource)
		assert.Equal(t, "Pericytes", body.DefaultTarget)
	})

	t.Run("pairs", func(t *testing.T) {
		w := get(t, r, "/api/v1/pairs", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body PairsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Total)
		assert.Equal(t, []models.PairKey{"Fibroblasts2Pericytes", "Pericytes2Fibroblasts"}, body.Pairs)
	})
}

func TestClassify_Internal(t *testing.T) {
	status, kind, message := classify(assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", kind)
	assert.NotContains(t, message, assert.AnError.Error())
}
