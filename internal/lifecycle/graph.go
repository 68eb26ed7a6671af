package lifecycle

import "github.com/Veraticus/claimflow/internal/model"

// Node is a status in the rendered graph with its highlight flags.
type Node struct {
	Status  model.ClaimStatus
	Active  bool
	Current bool
}

// GraphEdge is an edge with its highlight flag.
type GraphEdge struct {
	Edge
	Active bool
}

// Graph is the lifecycle graph annotated for a current status.
type Graph struct {
	Current model.ClaimStatus
	Nodes   []Node
	Edges   []GraphEdge
}

// IsActive reports whether node lies on the traversed part of the main path.
// Branch nodes are never active by order.
func IsActive(node, current model.ClaimStatus) bool {
	i := MainIndex(node)
	c := MainIndex(current)
	return i >= 0 && c >= 0 && i <= c
}

// EdgeActive reports whether from→to is part of the highlighted path.
func EdgeActive(from, to, current model.ClaimStatus) bool {
	return IsActive(from, current) && (IsActive(to, current) || to == current)
}

// Annotate builds the graph for current.
func Annotate(current model.ClaimStatus) Graph {
	g := Graph{Current: current}
	for _, s := range Nodes() {
		g.Nodes = append(g.Nodes, Node{
			Status:  s,
			Active:  IsActive(s, current),
			Current: s == current,
		})
	}
	for _, e := range Edges() {
		g.Edges = append(g.Edges, GraphEdge{
			Edge:   e,
			Active: EdgeActive(e.From, e.To, current),
		})
	}
	return g
}

// Node returns the annotated node for s.
func (g Graph) Node(s model.ClaimStatus) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Status == s {
			return n, true
		}
	}
	return Node{}, false
}
