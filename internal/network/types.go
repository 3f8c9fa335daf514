// Package network implements the node store and residual-BFS kernel that
// every solver, the load balancer, and the ablation engine share: a
// keyed container of vertices and directed edges with reverse-edge
// pairing and constant-time lookup by code.
package network

import "fmt"

// Epsilon is the tolerance used throughout the package wherever a float
// comparison would otherwise be exact-equality.
const Epsilon = 1e-9

// VertexKind is a closed enum; there is no vertex type hierarchy.
type VertexKind int

const (
	KindReservoir VertexKind = iota
	KindPumpingStation
	KindCity
	KindSuperSource
	KindSuperTarget
)

func (k VertexKind) String() string {
	switch k {
	case KindReservoir:
		return "reservoir"
	case KindPumpingStation:
		return "station"
	case KindCity:
		return "city"
	case KindSuperSource:
		return "super_source"
	case KindSuperTarget:
		return "super_target"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Vertex is a node in the network. Out and In hold edge indices into the
// owning Network's edge arena, in insertion order. visited and pathEdge
// are scratch fields used by the BFS/augment kernel and are reset at the
// start of every kernel invocation; callers never read them directly.
type Vertex struct {
	Code        string
	Kind        VertexKind
	MaxDelivery float64 // meaningful for KindReservoir
	Demand      float64 // meaningful for KindCity
	Flow        float64 // derived; see Network.RefreshFlows

	Out []int
	In  []int

	visited  bool
	pathEdge int
}

// HasFlow reports whether any incident edge carries non-zero flow.
func (v *Vertex) HasFlow(n *Network) bool {
	for _, ei := range v.Out {
		if n.edges[ei].Flow > Epsilon {
			return true
		}
	}
	for _, ei := range v.In {
		if n.edges[ei].Flow > Epsilon {
			return true
		}
	}
	return false
}

// Edge is a directed arc with a real-valued capacity. Reverse is the
// index of the paired edge for a bidirectional pipe, or -1.
type Edge struct {
	Origin      int
	Destination int
	Capacity    float64
	Flow        float64
	Reverse     int
}

// ResidualForward is the forward residual capacity, capacity - flow.
func (e *Edge) ResidualForward() float64 {
	return e.Capacity - e.Flow
}

// AbsSlack is the absolute slack capacity - flow.
func (e *Edge) AbsSlack() float64 {
	return e.Capacity - e.Flow
}

// RelSlack is the relative slack, or zero by convention when capacity is
// zero (see spec §4.4/§9 on the zero-capacity guard).
func (e *Edge) RelSlack() float64 {
	if e.Capacity <= Epsilon {
		return 0
	}
	return e.AbsSlack() / e.Capacity
}

// EdgeRef is a read-only, code-addressed view of an edge, used for
// reporting (see Network.Paths) so callers never need arena indices.
type EdgeRef struct {
	Origin      string
	Destination string
	Capacity    float64
	Flow        float64
}

// Pipe is the external ingestion-time record (§3): a pipe between two
// service points becomes one or two directed edges depending on
// Unidirectional. The network keeps the pipe list alongside the edge
// arena so the ablation engine and the façade can address a pipe by its
// two endpoints rather than by edge index.
type Pipe struct {
	ServicePointA  string
	ServicePointB  string
	Capacity       float64
	Unidirectional bool
}

// Network is the node store: a code-keyed vertex set plus a flat edge
// arena addressed by stable integer indices (see SPEC_FULL.md's design
// notes on replacing the original's raw-pointer graph).
type Network struct {
	vertices  []*Vertex
	codeIndex map[string]int
	edges     []*Edge
	Pipes     []Pipe

	superSource int
	superTarget int
}

// New returns an empty network.
func New() *Network {
	return &Network{
		codeIndex:   make(map[string]int),
		superSource: -1,
		superTarget: -1,
	}
}

// AddVertex inserts a vertex with the given code and kind. It returns
// false if the code is already taken (invariant 1: codes are unique).
func (n *Network) AddVertex(code string, kind VertexKind) bool {
	if _, exists := n.codeIndex[code]; exists {
		return false
	}
	idx := len(n.vertices)
	n.vertices = append(n.vertices, &Vertex{Code: code, Kind: kind, pathEdge: -1})
	n.codeIndex[code] = idx
	return true
}

// FindVertex returns the vertex for a code, amortised O(1).
func (n *Network) FindVertex(code string) (*Vertex, bool) {
	idx, ok := n.codeIndex[code]
	if !ok {
		return nil, false
	}
	return n.vertices[idx], true
}

// IndexOf returns the arena index of a code.
func (n *Network) IndexOf(code string) (int, bool) {
	idx, ok := n.codeIndex[code]
	return idx, ok
}

// VertexAt and EdgeAt give index-addressed access to the arena, used by
// algorithms that already hold indices (e.g. path enumeration, ablation).
func (n *Network) VertexAt(idx int) *Vertex { return n.vertices[idx] }
func (n *Network) EdgeAt(idx int) *Edge     { return n.edges[idx] }

// VertexCount and EdgeCount report arena sizes.
func (n *Network) VertexCount() int { return len(n.vertices) }
func (n *Network) EdgeCount() int   { return len(n.edges) }

// Vertices and Edges expose the arenas for iteration. Callers must not
// mutate Out/In or append to the returned slices.
func (n *Network) Vertices() []*Vertex { return n.vertices }
func (n *Network) Edges() []*Edge      { return n.edges }

func (n *Network) findEdgeBetween(a, b int) (int, bool) {
	for _, ei := range n.vertices[a].Out {
		if n.edges[ei].Destination == b {
			return ei, true
		}
	}
	return -1, false
}

// AddEdge adds a directed edge src->dst. It returns false if either
// endpoint is missing. If an edge dst->src already exists with an
// identical capacity, the two are linked as mutual reverses (invariant
// 3); edges that merely happen to be anti-parallel with differing
// capacity are left unpaired.
func (n *Network) AddEdge(src, dst string, capacity, initialFlow float64) bool {
	si, ok := n.codeIndex[src]
	if !ok {
		return false
	}
	di, ok := n.codeIndex[dst]
	if !ok {
		return false
	}
	ei := len(n.edges)
	n.edges = append(n.edges, &Edge{
		Origin:      si,
		Destination: di,
		Capacity:    capacity,
		Flow:        initialFlow,
		Reverse:     -1,
	})
	n.vertices[si].Out = append(n.vertices[si].Out, ei)
	n.vertices[di].In = append(n.vertices[di].In, ei)

	if opp, found := n.findEdgeBetween(di, si); found && n.edges[opp].Reverse == -1 {
		if floatEquals(n.edges[opp].Capacity, capacity) {
			n.edges[ei].Reverse = opp
			n.edges[opp].Reverse = ei
		}
	}
	return true
}

// AddBidirectional adds both directed edges of a bidirectional pipe and
// unconditionally pairs them as mutual reverses, regardless of capacity
// (see SPEC_FULL.md's design notes: a bidirectional pipe's two stored
// edges always pair, by construction, not by capacity coincidence).
func (n *Network) AddBidirectional(src, dst string, capacity, fwdFlow, revFlow float64) bool {
	si, ok := n.codeIndex[src]
	if !ok {
		return false
	}
	di, ok := n.codeIndex[dst]
	if !ok {
		return false
	}
	fi := len(n.edges)
	n.edges = append(n.edges, &Edge{Origin: si, Destination: di, Capacity: capacity, Flow: fwdFlow, Reverse: fi + 1})
	n.vertices[si].Out = append(n.vertices[si].Out, fi)
	n.vertices[di].In = append(n.vertices[di].In, fi)

	ri := len(n.edges)
	n.edges = append(n.edges, &Edge{Origin: di, Destination: si, Capacity: capacity, Flow: revFlow, Reverse: fi})
	n.vertices[di].Out = append(n.vertices[di].Out, ri)
	n.vertices[si].In = append(n.vertices[si].In, ri)
	return true
}

// AddPipe registers a Pipe's directed edge(s) (per §3: one edge when
// unidirectional, two mutually-reversed edges otherwise) and records the
// Pipe itself so ablation and reporting can address it by endpoints.
func (n *Network) AddPipe(a, b string, capacity float64, unidirectional bool) bool {
	var ok bool
	if unidirectional {
		ok = n.AddEdge(a, b, capacity, 0)
	} else {
		ok = n.AddBidirectional(a, b, capacity, 0, 0)
	}
	if !ok {
		return false
	}
	n.Pipes = append(n.Pipes, Pipe{ServicePointA: a, ServicePointB: b, Capacity: capacity, Unidirectional: unidirectional})
	return true
}

func floatEquals(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= Epsilon
}

// RefreshFlows recomputes every vertex's derived Flow: the sum of
// incoming edge flows when the vertex has any incoming edge, else the
// sum of outgoing edge flows (reservoirs and the super-source).
func (n *Network) RefreshFlows() {
	for _, v := range n.vertices {
		if len(v.In) > 0 {
			total := 0.0
			for _, ei := range v.In {
				total += n.edges[ei].Flow
			}
			v.Flow = total
			continue
		}
		total := 0.0
		for _, ei := range v.Out {
			total += n.edges[ei].Flow
		}
		v.Flow = total
	}
}
