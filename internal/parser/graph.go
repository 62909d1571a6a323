package parser

import (
	"github.com/ligandscope/core/internal/models"
)

// BuildChord turns a ligand-by-receptor matrix (ligands as rows) into the
// circular-diagram graph. Nodes without any interaction are left out.
func BuildChord(m *models.InteractionMatrix) *models.Graph {
	graph := &models.Graph{
		Nodes: []models.Node{},
		Links: []models.Link{},
	}

	ligands, receptors := m.Rows(), m.Columns()
	rowTotals := make([]float64, len(ligands))
	colTotals := make([]float64, len(receptors))
	if !m.IsEmpty() {
		for i := range ligands {
			for j := range receptors {
				v := m.At(i, j)
				if v == 0 {
					continue
				}
				rowTotals[i] += v
				colTotals[j] += v
				graph.Links = append(graph.Links, models.Link{
					Source: ligands[i],
					Target: receptors[j],
					Value:  v,
				})
			}
		}
	}

	stats := &models.Stats{}
	nodeMap := make(map[string]bool)
	addNodes := func(labels []string, totals []float64, kind string) {
		for i, id := range labels {
			key := models.NodeKey(kind, id)
			if totals[i] == 0 || nodeMap[key] {
				continue
			}
			graph.Nodes = append(graph.Nodes, models.Node{ID: id, Kind: kind, Total: totals[i]})
			nodeMap[key] = true
			if kind == models.KindLigand {
				stats.Ligands++
			} else {
				stats.Receptors++
			}
		}
	}
	addNodes(ligands, rowTotals, models.KindLigand)
	addNodes(receptors, colTotals, models.KindReceptor)

	for _, l := range graph.Links {
		stats.TotalWeight += l.Value
	}
	stats.TotalNodes = len(graph.Nodes)
	stats.TotalLinks = len(graph.Links)
	graph.Stats = stats

	return graph
}
