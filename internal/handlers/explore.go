package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligandscope/core/internal/config"
	"github.com/ligandscope/core/internal/export"
	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/models"
	"github.com/ligandscope/core/internal/pipeline"
	"github.com/ligandscope/core/internal/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Explorer runs the interaction pipeline for a cell pair.
type Explorer interface {
	Explore(source, target models.CellType) (*models.PairView, error)
	LigandActivities(source, target models.CellType) ([]models.LigandActivity, error)
	LigandTarget(source, target models.CellType) (*models.InteractionMatrix, error)
	Selector() *pipeline.Selector
}

// PairLister lists the pair keys present in the dataset.
type PairLister interface {
	Pairs() []models.PairKey
}

// ErrorRecorder counts failed pipeline runs by kind.
type ErrorRecorder interface {
	PipelineError(kind string)
}

// API serves the pair views over HTTP.
type API struct {
	explorer Explorer
	pairs    PairLister
	render   config.RenderConfig
	errors   ErrorRecorder
	log      logging.Logger
}

// NewAPI builds the handlers. recorder may be nil.
func NewAPI(explorer Explorer, pairs PairLister, renderCfg config.RenderConfig, recorder ErrorRecorder, log logging.Logger) *API {
	if log == nil {
		log = logging.NewNop()
	}
	return &API{
		explorer: explorer,
		pairs:    pairs,
		render:   renderCfg,
		errors:   recorder,
		log:      log.Named("api"),
	}
}

// Register mounts every endpoint on r.
func (a *API) Register(r gin.IRouter) {
	r.GET("/cell-types", a.CellTypes)
	r.GET("/pairs", a.Pairs)
	r.GET("/heatmap", a.Heatmap)
	r.GET("/heatmap.png", a.HeatmapPNG)
	r.GET("/chord", a.Chord)
	r.GET("/chord.svg", a.ChordSVG)
	r.GET("/ligand-activities", a.LigandActivities)
	r.GET("/ligand-target", a.LigandTarget)
	r.GET("/export.xlsx", a.Export)
}

// CellTypesResponse lists the selectable cell types and the initial choice.
type CellTypesResponse struct {
	CellTypes     []string `json:"cell_types"`
	DefaultSource string   `json:"default_source"`
	DefaultTarget string   `json:"default_target"`
}

// PairsResponse lists the pair keys of the dataset.
type PairsResponse struct {
	Pairs []models.PairKey `json:"pairs"`
	Total int              `json:"total"`
}

// ActivitiesResponse is the ligand activity ranking of a pair.
type ActivitiesResponse struct {
	Key        models.PairKey          `json:"key"`
	Activities []models.LigandActivity `json:"activities"`
}

// MatrixResponse wraps a single matrix of a pair.
type MatrixResponse struct {
	Key    models.PairKey            `json:"key"`
	Matrix *models.InteractionMatrix `json:"matrix"`
}

// respond writes v as JSON, indented when ?pretty=true.
func respond(c *gin.Context, v any) {
	if c.Query("pretty") == "true" {
		c.IndentedJSON(http.StatusOK, v)
		return
	}
	c.JSON(http.StatusOK, v)
}

// pair reads source and target from the query, falling back to the first two
// cell types.
func (a *API) pair(c *gin.Context) (models.CellType, models.CellType) {
	source, target := a.explorer.Selector().Defaults()
	if s, ok := c.GetQuery("source"); ok {
		source = models.CellType(s)
	}
	if t, ok := c.GetQuery("target"); ok {
		target = models.CellType(t)
	}
	return source, target
}

func (a *API) explore(c *gin.Context) (*models.PairView, bool) {
	source, target := a.pair(c)
	view, err := a.explorer.Explore(source, target)
	if err != nil {
		a.fail(c, err)
		return nil, false
	}
	return view, true
}

func (a *API) CellTypes(c *gin.Context) {
	source, target := a.explorer.Selector().Defaults()
	respond(c, CellTypesResponse{
		CellTypes:     a.explorer.Selector().CellTypes().Strings(),
		DefaultSource: string(source),
		DefaultTarget: string(target),
	})
}

func (a *API) Pairs(c *gin.Context) {
	pairs := a.pairs.Pairs()
	respond(c, PairsResponse{Pairs: pairs, Total: len(pairs)})
}

func (a *API) Heatmap(c *gin.Context) {
	view, ok := a.explore(c)
	if !ok {
		return
	}
	respond(c, view.Heatmap)
}

func (a *API) Chord(c *gin.Context) {
	view, ok := a.explore(c)
	if !ok {
		return
	}
	respond(c, view.Chord)
}

func (a *API) HeatmapPNG(c *gin.Context) {
	view, ok := a.explore(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.HeatmapPNG(&buf, view.Heatmap, a.render.HeatmapWidth, a.render.HeatmapHeight); err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (a *API) ChordSVG(c *gin.Context) {
	view, ok := a.explore(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.ChordSVG(&buf, view.Chord, a.render.ChordSize); err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (a *API) LigandActivities(c *gin.Context) {
	source, target := a.pair(c)
	activities, err := a.explorer.LigandActivities(source, target)
	if err != nil {
		a.fail(c, err)
		return
	}
	respond(c, ActivitiesResponse{Key: models.NewPairKey(source, target), Activities: activities})
}

func (a *API) LigandTarget(c *gin.Context) {
	source, target := a.pair(c)
	m, err := a.explorer.LigandTarget(source, target)
	if err != nil {
		a.fail(c, err)
		return
	}
	respond(c, MatrixResponse{Key: models.NewPairKey(source, target), Matrix: m})
}

// Export downloads the tables of a pair as an xlsx workbook.
func (a *API) Export(c *gin.Context) {
	view, ok := a.explore(c)
	if !ok {
		return
	}
	activities, err := a.explorer.LigandActivities(view.Source, view.Target)
	if err != nil {
		a.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, view, activities); err != nil {
		a.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+string(view.Key)+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
