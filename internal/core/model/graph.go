package model

// Graph is a directed, possibly cyclic, possibly disconnected multigraph.
// Two nodes may be joined by multiple edges of different types.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
