package models

// Node kinds of the chord diagram.
const (
	KindLigand   = "ligand"
	KindReceptor = "receptor"
)

// Graph is the circular-diagram view of a filtered matrix: ligands and
// receptors are nodes, non-zero interactions are links.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Stats *Stats `json:"stats,omitempty"`
}

type Node struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Total float64 `json:"total"`
}

// Key identifies n within a graph. A ligand and a receptor may share a label,
// so the kind is part of the key.
func (n Node) Key() string { return NodeKey(n.Kind, n.ID) }

// NodeKey is the Key of the node of the given kind and label.
func NodeKey(kind, id string) string { return kind + ":" + id }

type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

type Stats struct {
	TotalNodes  int     `json:"total_nodes"`
	TotalLinks  int     `json:"total_links"`
	Ligands     int     `json:"ligands"`
	Receptors   int     `json:"receptors"`
	TotalWeight float64 `json:"total_weight"`
}
